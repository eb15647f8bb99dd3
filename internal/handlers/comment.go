package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MustafaTaha09/Complaint-System/internal/service"
)

type CommentHandler struct {
	Comments *service.CommentService
}

func (h *CommentHandler) ListByTicket(c echo.Context) error {
	ticketID, err := parseID(c, "ticketId")
	if err != nil {
		return err
	}
	comments, err := h.Comments.ListByTicket(c.Request().Context(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "commentId")
	if err != nil {
		return err
	}
	comment, err := h.Comments.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Create(c echo.Context) error {
	ticketID, err := parseID(c, "ticketId")
	if err != nil {
		return err
	}
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment text is required")
	}
	comment, err := h.Comments.Create(c.Request().Context(), p, ticketID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Update(c echo.Context) error {
	id, err := parseID(c, "commentId")
	if err != nil {
		return err
	}
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment text is required")
	}
	comment, err := h.Comments.Update(c.Request().Context(), p, id, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "commentId")
	if err != nil {
		return err
	}
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.Comments.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
