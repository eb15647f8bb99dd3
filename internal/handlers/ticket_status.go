package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/service"
)

type TicketStatusHandler struct {
	Statuses *service.TicketStatusService
}

func (h *TicketStatusHandler) GetAll(c echo.Context) error {
	statuses, err := h.Statuses.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statuses)
}

func (h *TicketStatusHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "statusId")
	if err != nil {
		return err
	}
	status, err := h.Statuses.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (h *TicketStatusHandler) Create(c echo.Context) error {
	var req nameRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status name is required")
	}
	status, err := h.Statuses.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, status)
}

func (h *TicketStatusHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "statusId")
	if err != nil {
		return err
	}
	if err := h.Statuses.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
