package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/service"
)

type DepartmentHandler struct {
	Departments *service.DepartmentService
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *DepartmentHandler) GetAll(c echo.Context) error {
	departments, err := h.Departments.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, departments)
}

func (h *DepartmentHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	dept, err := h.Departments.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dept)
}

func (h *DepartmentHandler) Create(c echo.Context) error {
	var req nameRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "department name is required")
	}
	dept, err := h.Departments.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dept)
}

func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req nameRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "department name is required")
	}
	dept, err := h.Departments.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dept)
}

func (h *DepartmentHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Departments.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
