package handlers_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/handlers"
	"github.com/MustafaTaha09/Complaint-System/internal/hash"
	"github.com/MustafaTaha09/Complaint-System/internal/metrics"
	authmw "github.com/MustafaTaha09/Complaint-System/internal/middleware/auth"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
	"github.com/MustafaTaha09/Complaint-System/internal/service"
	httpserver "github.com/MustafaTaha09/Complaint-System/internal/transport/http"
)

type testApp struct {
	e       *echo.Echo
	db      *gorm.DB
	tokens  *security.TokenProvider
	refresh *service.RefreshTokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.Department{},
		&models.User{},
		&models.RefreshToken{},
		&models.TicketStatus{},
		&models.Ticket{},
		&models.Comment{},
		&models.TicketAssignment{},
	))

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keys := &security.KeyMaterial{PrivateKey: key, PublicKey: &key.PublicKey}
	logger := slog.Default()
	tokens := security.NewTokenProvider(keys, 15*time.Minute, logger)

	m := metrics.New(prometheus.NewRegistry())

	userSvc := &service.UserService{DB: db}
	refreshSvc := &service.RefreshTokenService{DB: db, TTL: 24 * time.Hour}

	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger)

	deps := httpserver.Deps{
		Gate: &authmw.Gate{Tokens: tokens, Metrics: m},
		Auth: &handlers.AuthHandler{
			Users:   userSvc,
			Refresh: refreshSvc,
			Tokens:  tokens,
			Metrics: m,
		},
		Users:       &handlers.UserHandler{Users: userSvc},
		Tickets:     &handlers.TicketHandler{Tickets: &service.TicketService{DB: db}},
		Comments:    &handlers.CommentHandler{Comments: &service.CommentService{DB: db}},
		Departments: &handlers.DepartmentHandler{Departments: &service.DepartmentService{DB: db}},
		Roles:       &handlers.RoleHandler{Roles: &service.RoleService{DB: db}},
		Statuses:    &handlers.TicketStatusHandler{Statuses: &service.TicketStatusService{DB: db}},
		Assignments: &handlers.AssignmentHandler{Assignments: &service.AssignmentService{DB: db}},
	}
	httpserver.Register(e, &deps)

	return &testApp{e: e, db: db, tokens: tokens, refresh: refreshSvc}
}

func (a *testApp) seedUser(t *testing.T, username, roleName string) *models.User {
	t.Helper()
	var role models.Role
	if err := a.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		role = models.Role{Name: roleName}
		require.NoError(t, a.db.Create(&role).Error)
	}
	pwHash, err := hash.HashPassword("password")
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Email:        username + "@example.com",
		RoleID:       role.ID,
		Role:         role,
	}
	require.NoError(t, a.db.Create(&user).Error)
	return &user
}

func (a *testApp) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func loginAs(t *testing.T, a *testApp, username string) (accessToken, refreshToken string) {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "Bearer", body["tokenType"])
	return body["accessToken"].(string), body["refreshToken"].(string)
}
