package apperr

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ErrorDetails is the error body returned for every recovered failure.
type ErrorDetails struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// HTTPErrorHandler recovers typed service errors into structured JSON
// bodies. Nothing propagates to the client as an unhandled fault.
func HTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "An internal server error occurred."

		var (
			notFound  *NotFoundError
			badReq    *BadRequestError
			denied    *AccessDeniedError
			refresh   *TokenRefreshError
			httpError *echo.HTTPError
		)

		switch {
		case errors.As(err, &notFound):
			code = http.StatusNotFound
			msg = notFound.Msg
			log.Warn("resource not found", "path", c.Request().URL.Path, "error", notFound.Msg)
		case errors.As(err, &badReq):
			code = http.StatusBadRequest
			msg = badReq.Msg
			log.Warn("bad request", "path", c.Request().URL.Path, "error", badReq.Msg)
		case errors.As(err, &denied):
			code = http.StatusForbidden
			msg = "Access Denied: You do not have permission to perform this action."
			log.Warn("access denied", "path", c.Request().URL.Path, "reason", denied.Reason)
		case errors.As(err, &refresh):
			code = http.StatusForbidden
			msg = refresh.Error()
			log.Warn("token refresh failed", "path", c.Request().URL.Path, "error", refresh.Error())
		case errors.As(err, &httpError):
			code = httpError.Code
			if m, ok := httpError.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
			if code >= 500 {
				log.Error("http error", "path", c.Request().URL.Path, "status", code, "error", err)
			}
		default:
			log.Error("unhandled error", "path", c.Request().URL.Path, "error", err)
		}

		body := ErrorDetails{
			Timestamp: time.Now(),
			Message:   msg,
			Path:      c.Request().URL.Path,
		}
		if jsonErr := c.JSON(code, body); jsonErr != nil {
			log.Error("failed to write error response", "error", jsonErr)
		}
	}
}
