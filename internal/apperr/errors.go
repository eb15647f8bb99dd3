package apperr

import "fmt"

// NotFoundError indicates a referenced row does not exist.
type NotFoundError struct {
	Resource string
	Msg      string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NotFound(resource, format string, args ...any) *NotFoundError {
	return &NotFoundError{Resource: resource, Msg: fmt.Sprintf(format, args...)}
}

// BadRequestError maps to HTTP 400 at the boundary.
type BadRequestError struct {
	Msg string
}

func (e *BadRequestError) Error() string { return e.Msg }

func BadRequest(format string, args ...any) *BadRequestError {
	return &BadRequestError{Msg: fmt.Sprintf(format, args...)}
}

// AccessDeniedError maps to HTTP 403. The client always receives the
// generic message, never the internal reason.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string { return e.Reason }

func AccessDenied(format string, args ...any) *AccessDeniedError {
	return &AccessDeniedError{Reason: fmt.Sprintf(format, args...)}
}

// TokenRefreshError is the terminal rejection for the refresh flow.
// The message embeds the offending token value, matching the response
// body the frontend already parses.
type TokenRefreshError struct {
	Token  string
	Reason string
}

func (e *TokenRefreshError) Error() string {
	return fmt.Sprintf("Refresh Token Failed [%s]: %s", e.Token, e.Reason)
}

func TokenRefresh(token, reason string) *TokenRefreshError {
	return &TokenRefreshError{Token: token, Reason: reason}
}
