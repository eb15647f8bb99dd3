package security

import "context"

// Principal is the authenticated identity for the current request.
// Immutable; stored request-scoped, never in process-wide state.
type Principal struct {
	UserID   uint
	Username string
	Role     string
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the request's principal, if the
// authentication gate established one.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
