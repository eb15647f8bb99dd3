package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/service"
	"github.com/MustafaTaha09/Complaint-System/internal/util"
)

type AssignmentHandler struct {
	Assignments *service.AssignmentService
}

type assignmentRequest struct {
	TicketID uint `json:"ticket_id"`
	UserID   uint `json:"user_id"`
}

func (h *AssignmentHandler) GetAll(c echo.Context) error {
	assignments, err := h.Assignments.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	assignment, err := h.Assignments.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) Create(c echo.Context) error {
	var req assignmentRequest
	if err := c.Bind(&req); err != nil || req.TicketID == 0 || req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket_id and user_id are required")
	}
	assignment, err := h.Assignments.Create(c.Request().Context(), req.TicketID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Assignments.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteByTicketAndUser removes an assignment addressed by the pair of
// query parameters instead of the surrogate id.
func (h *AssignmentHandler) DeleteByTicketAndUser(c echo.Context) error {
	ticketID := util.ParseIntDefault(c.QueryParam("ticket_id"), 0)
	userID := util.ParseIntDefault(c.QueryParam("user_id"), 0)
	if ticketID <= 0 || userID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket_id and user_id are required")
	}
	if err := h.Assignments.DeleteByTicketAndUser(c.Request().Context(), uint(ticketID), uint(userID)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
