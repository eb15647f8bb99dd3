package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

func parseID(c echo.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+param)
	}
	return uint(id), nil
}

// currentPrincipal fetches the gate-established identity. Routes calling
// this sit behind RequireAuth, so absence means a wiring bug; reject
// rather than panic.
func currentPrincipal(c echo.Context) (security.Principal, error) {
	p, ok := security.PrincipalFromContext(c.Request().Context())
	if !ok {
		return security.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Full authentication is required to access this resource")
	}
	return p, nil
}
