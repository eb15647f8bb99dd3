package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

func TestLoginReturnsTokenPair(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "alice", security.RoleUser)

	access, refresh := loginAs(t, app, "alice")
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	// Decoding the access token yields the authenticated subject.
	require.Equal(t, "alice", app.tokens.UsernameFromToken(access))

	claims, err := app.tokens.ClaimsFromToken(access)
	require.NoError(t, err)
	require.Equal(t, []string{security.RoleUser}, claims.Roles)
}

func TestLoginBadCredentials(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "alice", security.RoleUser)

	// Wrong password and unknown username yield the same generic 401.
	rec := app.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPw := decodeBody(t, rec)["message"]

	rec = app.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "who", "password": "password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, wrongPw, decodeBody(t, rec)["message"])
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "alice", security.RoleUser)
	_, refresh := loginAs(t, app, "alice")

	rec := app.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.NotEmpty(t, body["accessToken"])
	require.Equal(t, refresh, body["refreshToken"])
	require.Equal(t, "alice", app.tokens.UsernameFromToken(body["accessToken"].(string)))
}

func TestRefreshWithExpiredToken(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "alice", security.RoleUser)
	_, refresh := loginAs(t, app, "alice")

	// Expire it one hour in the past.
	require.NoError(t, app.db.Model(&models.RefreshToken{}).
		Where("token = ?", refresh).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	rec := app.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, decodeBody(t, rec)["message"], "expired")

	// Token was deleted as a side effect.
	var count int64
	require.NoError(t, app.db.Model(&models.RefreshToken{}).Where("token = ?", refresh).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestRefreshWithUnknownToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": "never-issued",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, decodeBody(t, rec)["message"], "not found")
}

func TestSecondLoginInvalidatesFirstRefreshToken(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "alice", security.RoleUser)

	_, firstRefresh := loginAs(t, app, "alice")
	_, secondRefresh := loginAs(t, app, "alice")
	require.NotEqual(t, firstRefresh, secondRefresh)

	rec := app.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": firstRefresh,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, decodeBody(t, rec)["message"], "not found")

	rec = app.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": secondRefresh,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)
	role := models.Role{Name: security.RoleUser}
	require.NoError(t, app.db.Create(&role).Error)

	payload := map[string]any{
		"username": "newbie",
		"password": "password",
		"email":    "newbie@example.com",
		"role_id":  role.ID,
	}
	rec := app.request(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, app.db.Where("username = ?", "newbie").First(&user).Error)
	require.NotEqual(t, "password", user.PasswordHash)

	// Duplicate username.
	rec = app.request(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["message"], "already taken")

	// Duplicate email under a fresh username.
	payload["username"] = "newbie2"
	rec = app.request(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["message"], "Email is already taken")
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "alice", security.RoleUser)
	access, refresh := loginAs(t, app, "alice")

	rec := app.request(t, http.MethodPost, "/api/auth/logout", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.RefreshToken{}).Where("token = ?", refresh).Count(&count).Error)
	require.EqualValues(t, 0, count)

	// Logout requires authentication.
	rec = app.request(t, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
