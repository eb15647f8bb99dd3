package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/config"
	"github.com/MustafaTaha09/Complaint-System/internal/events"
	"github.com/MustafaTaha09/Complaint-System/internal/handlers"
	"github.com/MustafaTaha09/Complaint-System/internal/logging"
	"github.com/MustafaTaha09/Complaint-System/internal/metrics"
	authmw "github.com/MustafaTaha09/Complaint-System/internal/middleware/auth"
	loggingmw "github.com/MustafaTaha09/Complaint-System/internal/middleware/logging"
	"github.com/MustafaTaha09/Complaint-System/internal/search"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
	"github.com/MustafaTaha09/Complaint-System/internal/service"
	httpserver "github.com/MustafaTaha09/Complaint-System/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.JWT_PRIVATE_KEY_PATH, "JWT_PRIVATE_KEY_PATH")
	config.MustNonEmpty(cfg.JWT_PUBLIC_KEY_PATH, "JWT_PUBLIC_KEY_PATH")

	logger := logging.New(cfg.LOG_LEVEL)

	// Fail fast: the service cannot run without verifiable signing keys.
	keys, err := security.LoadKeys(cfg.JWT_PRIVATE_KEY_PATH, cfg.JWT_PUBLIC_KEY_PATH)
	if err != nil {
		log.Fatalf("key material load failed: %v", err)
	}
	logger.Info("loaded RSA signing keys")

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
	}

	var esClient *elasticsearch.Client
	if cfg.ES_URL != "" {
		esClient, err = search.NewClient(cfg)
		if err != nil {
			logger.Warn("elasticsearch unavailable, ticket search disabled", "error", err)
			esClient = nil
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	tokens := security.NewTokenProvider(keys, cfg.AccessTokenTTL(), logger)

	userSvc := &service.UserService{DB: db}
	refreshSvc := &service.RefreshTokenService{DB: db, TTL: cfg.RefreshTokenTTL()}
	ticketSvc := &service.TicketService{DB: db}
	commentSvc := &service.CommentService{DB: db}
	departmentSvc := &service.DepartmentService{DB: db}
	roleSvc := &service.RoleService{DB: db}
	statusSvc := &service.TicketStatusService{DB: db}
	assignmentSvc := &service.AssignmentService{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger)
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger, m))

	deps := httpserver.Deps{
		Gate: &authmw.Gate{Tokens: tokens, Metrics: m},
		Auth: &handlers.AuthHandler{
			Users:    userSvc,
			Refresh:  refreshSvc,
			Tokens:   tokens,
			Producer: producer,
			Metrics:  m,
		},
		Users:        &handlers.UserHandler{Users: userSvc},
		Tickets:      &handlers.TicketHandler{Tickets: ticketSvc, Producer: producer, ES: esClient},
		Comments:     &handlers.CommentHandler{Comments: commentSvc},
		Departments:  &handlers.DepartmentHandler{Departments: departmentSvc},
		Roles:        &handlers.RoleHandler{Roles: roleSvc},
		Statuses:     &handlers.TicketStatusHandler{Statuses: statusSvc},
		Assignments:  &handlers.AssignmentHandler{Assignments: assignmentSvc},
		PromRegistry: registry,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "addr", cfg.HTTP_ADDR)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
