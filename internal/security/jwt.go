package security

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// AccessClaims is the claim set carried by access tokens. The claims are
// trusted only after RS256 signature verification succeeds.
type AccessClaims struct {
	UserID uint     `json:"userId"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenProvider issues and verifies RS256 access tokens. Pure function of
// identity + clock + key material; refresh tokens are opaque strings and
// live in the refresh token service instead.
type TokenProvider struct {
	Keys      *KeyMaterial
	AccessTTL time.Duration
	Log       *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewTokenProvider(keys *KeyMaterial, accessTTL time.Duration, log *slog.Logger) *TokenProvider {
	return &TokenProvider{Keys: keys, AccessTTL: accessTTL, Log: log, now: time.Now}
}

// GenerateToken builds a compact signed token for the given identity.
func (p *TokenProvider) GenerateToken(userID uint, username string, roles []string) (string, error) {
	now := p.clock()
	claims := AccessClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(p.Keys.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ValidateToken reports whether the token is authentic and unexpired.
// Failure detail is logged here and collapsed to a boolean: the gate
// only needs accept/reject.
func (p *TokenProvider) ValidateToken(tokenStr string) bool {
	_, err := p.parseClaims(tokenStr)
	if err == nil {
		return true
	}
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		// Routine: clients hold tokens past expiry all the time.
		p.Log.Debug("expired JWT token")
	case errors.Is(err, jwt.ErrTokenMalformed):
		p.Log.Error("malformed JWT token")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		p.Log.Error("JWT signature verification failed")
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		p.Log.Error("unsupported JWT token", "error", err)
	default:
		p.Log.Error("invalid JWT token", "error", err)
	}
	return false
}

// UsernameFromToken extracts the subject claim. Returns "" on any
// verification failure rather than raising past the gate.
func (p *TokenProvider) UsernameFromToken(tokenStr string) string {
	claims, err := p.parseClaims(tokenStr)
	if err != nil {
		return ""
	}
	return claims.Subject
}

// UserIDFromToken extracts the typed userId claim, 0 on failure.
func (p *TokenProvider) UserIDFromToken(tokenStr string) uint {
	claims, err := p.parseClaims(tokenStr)
	if err != nil {
		return 0
	}
	return claims.UserID
}

// ClaimsFromToken returns the verified claim set, or an error for any
// structural, signature or expiry problem.
func (p *TokenProvider) ClaimsFromToken(tokenStr string) (*AccessClaims, error) {
	return p.parseClaims(tokenStr)
}

func (p *TokenProvider) parseClaims(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.Keys.PublicKey, nil
	}, jwt.WithTimeFunc(p.clock))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return &claims, nil
}

func (p *TokenProvider) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}
