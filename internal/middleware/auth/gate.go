package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/metrics"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

// Gate runs once per request, before routing policy. It extracts the
// bearer token, verifies it, and stores the principal in the request
// context. Invalid or absent tokens do NOT short-circuit here; the
// policy layer decides whether the route needed authentication.
type Gate struct {
	Tokens  *security.TokenProvider
	Metrics *metrics.Metrics
}

func (g *Gate) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return next(c)
		}

		if !g.Tokens.ValidateToken(tokenStr) {
			if g.Metrics != nil {
				g.Metrics.TokenRejections.Inc()
			}
			return next(c)
		}
		claims, err := g.Tokens.ClaimsFromToken(tokenStr)
		if err != nil {
			return next(c)
		}

		principal := security.Principal{
			UserID:   claims.UserID,
			Username: claims.Subject,
			Role:     primaryRole(claims.Roles),
		}
		ctx := security.WithPrincipal(c.Request().Context(), principal)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func primaryRole(roles []string) string {
	for _, r := range roles {
		if r == security.RoleAdmin {
			return security.RoleAdmin
		}
	}
	if len(roles) > 0 {
		return roles[0]
	}
	return ""
}
