package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/service"
)

type UserHandler struct {
	Users *service.UserService
}

func (h *UserHandler) GetAll(c echo.Context) error {
	users, err := h.Users.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ChangeUsername(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&req); err != nil || req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "new username is required")
	}
	if err := h.Users.ChangeUsername(c.Request().Context(), id, req.Username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Username changed successfully. Please log in again."})
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "new password is required")
	}
	if err := h.Users.ChangePassword(c.Request().Context(), p, id, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ChangeRole(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		RoleName string `json:"role_name"`
	}
	if err := c.Bind(&req); err != nil || req.RoleName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role name is required")
	}
	if err := h.Users.ChangeRole(c.Request().Context(), id, req.RoleName); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
