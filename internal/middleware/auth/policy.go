package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/security"
	"github.com/MustafaTaha09/Complaint-System/internal/util"
)

// Route policies evaluated after the gate. Rejections: 401 when no
// principal was established, 403 when the principal lacks privilege.

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := security.PrincipalFromContext(c.Request().Context()); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Full authentication is required to access this resource")
		}
		return next(c)
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := security.PrincipalFromContext(c.Request().Context())
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Full authentication is required to access this resource")
		}
		if !p.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "Access Denied: You do not have permission to perform this action.")
		}
		return next(c)
	}
}

// RequireSelfOrAdmin admits admins, or callers whose user id equals the
// named path parameter.
func RequireSelfOrAdmin(idParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := security.PrincipalFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Full authentication is required to access this resource")
			}
			if p.IsAdmin() {
				return next(c)
			}
			id := util.ParseIntDefault(c.Param(idParam), -1)
			if id >= 0 && uint(id) == p.UserID {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "Access Denied: You do not have permission to perform this action.")
		}
	}
}
