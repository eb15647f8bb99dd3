package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/events"
	"github.com/MustafaTaha09/Complaint-System/internal/logging"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/search"
	"github.com/MustafaTaha09/Complaint-System/internal/service"
	"github.com/MustafaTaha09/Complaint-System/internal/util"
)

type TicketHandler struct {
	Tickets  *service.TicketService
	Producer *events.Producer
	ES       *elasticsearch.Client
}

func (h *TicketHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) List(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, tickets, err := h.Tickets.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": tickets,
		"meta": echo.Map{"page": page, "size": limit, "total": total},
	})
}

func (h *TicketHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req service.CreateTicketInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	ticket, err := h.Tickets.Create(c.Request().Context(), p.UserID, req)
	if err != nil {
		return err
	}
	h.index(c, ticket)
	h.publish(c, "ticket_created", ticket)
	return c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req service.CreateTicketInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	ticket, err := h.Tickets.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	h.index(c, ticket)
	return c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Patch(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req service.PatchTicketInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	ticket, err := h.Tickets.Patch(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	h.index(c, ticket)
	return c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Tickets.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Search is the public full-text endpoint backed by Elasticsearch.
func (h *TicketHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, tickets, err := search.SearchTickets(c.Request().Context(), h.ES, q, from, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "tickets": tickets})
}

func (h *TicketHandler) index(c echo.Context, ticket *models.Ticket) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexTicket(ctx, h.ES, ticket); err != nil {
		logging.FromContext(c.Request().Context()).Error("ticket index failed", "ticket_id", ticket.ID, "error", err)
	}
}

func (h *TicketHandler) publish(c echo.Context, eventType string, ticket *models.Ticket) {
	event := map[string]any{
		"type":      eventType,
		"ticket_id": ticket.ID,
		"user_id":   ticket.UserID,
		"title":     ticket.Title,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicTicketEvents, fmt.Sprint(ticket.ID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}
