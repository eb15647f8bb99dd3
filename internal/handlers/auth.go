package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/events"
	"github.com/MustafaTaha09/Complaint-System/internal/hash"
	"github.com/MustafaTaha09/Complaint-System/internal/logging"
	"github.com/MustafaTaha09/Complaint-System/internal/metrics"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
	"github.com/MustafaTaha09/Complaint-System/internal/service"
)

type AuthHandler struct {
	Users    *service.UserService
	Refresh  *service.RefreshTokenService
	Tokens   *security.TokenProvider
	Producer *events.Producer
	Metrics  *metrics.Metrics
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// jwtAuthenticationResponse is the shape shared by login and refresh.
type jwtAuthenticationResponse struct {
	AccessToken  string `json:"accessToken"`
	TokenType    string `json:"tokenType"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates username+password and returns an access/refresh
// token pair. Bad username and bad password collapse into the same 401
// to avoid username enumeration.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login", "username", req.Username)

	user, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil || !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login failed")
		h.Metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	accessToken, err := h.Tokens.GenerateToken(user.ID, user.Username, []string{user.Role.Name})
	if err != nil {
		return err
	}

	refreshToken, err := h.Refresh.Create(ctx, user.ID)
	if err != nil {
		return err
	}

	h.Metrics.LoginAttempts.WithLabelValues("success").Inc()
	l.Info("login successful", "user_id", user.ID)
	h.publishUserEvent(c, "user_logged_in", user.ID, user.Username)

	return c.JSON(http.StatusOK, jwtAuthenticationResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: refreshToken.Token,
	})
}

// RefreshToken exchanges a live refresh token for a new access token.
// The same refresh token is returned; rotation happens at login.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	token, err := h.Refresh.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh token not found")
			h.Metrics.RefreshRequests.WithLabelValues("not_found").Inc()
			return service.NotFoundRejection(req.RefreshToken)
		}
		return err
	}

	token, err = h.Refresh.VerifyExpiration(ctx, token)
	if err != nil {
		h.Metrics.RefreshRequests.WithLabelValues("expired").Inc()
		return err
	}

	user, err := h.Users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}

	accessToken, err := h.Tokens.GenerateToken(user.ID, user.Username, []string{user.Role.Name})
	if err != nil {
		return err
	}

	h.Metrics.RefreshRequests.WithLabelValues("success").Inc()
	l.Info("issued new access token via refresh", "user_id", user.ID)

	return c.JSON(http.StatusOK, jwtAuthenticationResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: req.RefreshToken,
	})
}

// Register creates a user account. Username and email uniqueness are
// checked up front so both failures surface as 400.
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.CreateUserInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()

	if taken, err := h.Users.ExistsByUsername(ctx, req.Username); err != nil {
		return err
	} else if taken {
		return echo.NewHTTPError(http.StatusBadRequest, "Username is already taken!")
	}
	if taken, err := h.Users.ExistsByEmail(ctx, req.Email); err != nil {
		return err
	} else if taken {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is already taken!")
	}

	user, err := h.Users.Create(ctx, req)
	if err != nil {
		return err
	}

	h.publishUserEvent(c, "user_registered", user.ID, user.Username)

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/users/%d", user.ID))
	return c.JSON(http.StatusCreated, user)
}

// Logout revokes the caller's refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if _, err := h.Refresh.DeleteByUserID(c.Request().Context(), p.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) publishUserEvent(c echo.Context, eventType string, userID uint, username string) {
	event := map[string]any{
		"type":     eventType,
		"user_id":  userID,
		"username": username,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}
