package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MustafaTaha09/Complaint-System/internal/handlers"
	authmw "github.com/MustafaTaha09/Complaint-System/internal/middleware/auth"
)

type Deps struct {
	Gate *authmw.Gate

	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Tickets     *handlers.TicketHandler
	Comments    *handlers.CommentHandler
	Departments *handlers.DepartmentHandler
	Roles       *handlers.RoleHandler
	Statuses    *handlers.TicketStatusHandler
	Assignments *handlers.AssignmentHandler

	PromRegistry *prometheus.Registry
}

// Register wires the route table. The gate runs on everything; route
// groups carry the declarative policy (public / authenticated / admin /
// self-or-admin). Comment mutations add a second, imperative ownership
// check inside the service.
func Register(e *echo.Echo, d *Deps) {
	e.Use(d.Gate.Middleware)

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/api-docs", apiDocs)
	if d.PromRegistry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.PromRegistry, promhttp.HandlerOpts{})))
	}

	// Public authentication surface.
	auth := e.Group("/api/auth")
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.RefreshToken)
	auth.POST("/register", d.Auth.Register)
	auth.POST("/logout", d.Auth.Logout, authmw.RequireAuth)

	// Tickets: reads and search are public, writes are gated.
	tickets := e.Group("/api/v1/tickets")
	tickets.GET("", d.Tickets.List)
	tickets.GET("/search", d.Tickets.Search)
	tickets.GET("/:id", d.Tickets.GetByID)
	tickets.POST("", d.Tickets.Create, authmw.RequireAuth)
	tickets.PUT("/:id", d.Tickets.Update, authmw.RequireAdmin)
	tickets.PATCH("/:id", d.Tickets.Patch, authmw.RequireAdmin)
	tickets.DELETE("/:id", d.Tickets.Delete, authmw.RequireAdmin)

	// Comments: must be logged in; ownership enforced in the service.
	api := e.Group("/api")
	api.GET("/tickets/:ticketId/comments", d.Comments.ListByTicket, authmw.RequireAuth)
	api.POST("/tickets/:ticketId/comments", d.Comments.Create, authmw.RequireAuth)
	api.GET("/comments/:commentId", d.Comments.GetByID, authmw.RequireAuth)
	api.PUT("/comments/:commentId", d.Comments.Update, authmw.RequireAuth)
	api.DELETE("/comments/:commentId", d.Comments.Delete, authmw.RequireAuth)

	// Users: mixed admin / self-or-admin policies.
	users := e.Group("/users")
	users.GET("", d.Users.GetAll, authmw.RequireAdmin)
	users.GET("/:id", d.Users.GetByID, authmw.RequireSelfOrAdmin("id"))
	users.GET("/:id/details", d.Users.GetByID, authmw.RequireSelfOrAdmin("id"))
	users.GET("/:id/profile", d.Users.GetByID, authmw.RequireSelfOrAdmin("id"))
	users.DELETE("/:id", d.Users.Delete, authmw.RequireAdmin)
	users.PATCH("/:id/change-username", d.Users.ChangeUsername, authmw.RequireAdmin)
	users.PATCH("/:id/change-password", d.Users.ChangePassword, authmw.RequireSelfOrAdmin("id"))
	users.PATCH("/:id/roles", d.Users.ChangeRole, authmw.RequireAdmin)

	// Admin-only resource groups.
	departments := e.Group("/api/departments", authmw.RequireAdmin)
	departments.GET("", d.Departments.GetAll)
	departments.GET("/:id", d.Departments.GetByID)
	departments.POST("", d.Departments.Create)
	departments.PUT("/:id", d.Departments.Update)
	departments.DELETE("/:id", d.Departments.Delete)

	roles := e.Group("/api/roles", authmw.RequireAdmin)
	roles.GET("", d.Roles.GetAll)
	roles.GET("/:id", d.Roles.GetByID)
	roles.POST("", d.Roles.Create)
	roles.PUT("/:id", d.Roles.Update)
	roles.DELETE("/:id", d.Roles.Delete)

	statuses := e.Group("/ticket-statuses", authmw.RequireAdmin)
	statuses.GET("", d.Statuses.GetAll)
	statuses.GET("/:statusId", d.Statuses.GetByID)
	statuses.POST("", d.Statuses.Create)
	statuses.DELETE("/:statusId", d.Statuses.Delete)

	assignments := e.Group("/api/assignments", authmw.RequireAdmin)
	assignments.GET("", d.Assignments.GetAll)
	assignments.GET("/:id", d.Assignments.GetByID)
	assignments.POST("", d.Assignments.Create)
	assignments.DELETE("", d.Assignments.DeleteByTicketAndUser)
	assignments.DELETE("/:id", d.Assignments.Delete)
}

func apiDocs(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"title":   "Complaint System API",
		"version": "v1",
		"auth":    "Bearer JWT via /api/auth/login",
	})
}
