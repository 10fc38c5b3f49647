package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/shelf/internal"
	"github.com/dukerupert/shelf/internal/auth"
	"github.com/dukerupert/shelf/internal/bootstrap"
	"github.com/dukerupert/shelf/internal/catalog"
	"github.com/dukerupert/shelf/internal/events"
	"github.com/dukerupert/shelf/internal/handler/api"
	"github.com/dukerupert/shelf/internal/middleware"
	"github.com/dukerupert/shelf/internal/repository"
	"github.com/dukerupert/shelf/internal/router"
	"github.com/dukerupert/shelf/internal/routes"
	"github.com/dukerupert/shelf/internal/service"
	"github.com/dukerupert/shelf/internal/telemetry"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(ctx, sqlDB, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)

	// Metrics
	telemetry.InitBusinessMetrics(cfg.Metrics.Namespace)
	metrics := middleware.NewMetrics(cfg.Metrics.Namespace)

	// Order events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.NATSURL != "" {
		logger.Info("Connecting to NATS...", "url", cfg.Events.NATSURL)
		nats, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		publisher = nats
		logger.Info("Order events enabled", "subject", cfg.Events.Subject)
	} else {
		logger.Warn("NATS_URL not set, order events are disabled")
	}
	defer publisher.Close()

	// Catalog search
	registry, err := catalog.NewRegistry(catalog.DefaultProviders()...)
	if err != nil {
		return fmt.Errorf("failed to initialize search providers: %w", err)
	}
	specBuilder, err := catalog.NewBookSpecificationBuilder(registry)
	if err != nil {
		return fmt.Errorf("failed to initialize search builder: %w", err)
	}

	// Auth
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
	hasher := auth.NewHasher(bcrypt.DefaultCost)

	// Services
	bookService := service.NewBookService(store, specBuilder, logger)
	categoryService := service.NewCategoryService(store, logger)
	cartService := service.NewCartService(store, logger)
	orderService := service.NewOrderService(store, publisher, logger)
	userService := service.NewUserService(store, hasher, logger)

	if err := bootstrap.EnsureAdmin(ctx, userService, &bootstrap.AdminConfig{
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
	}, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
		middleware.WithPrincipal(tokens),
	)

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		AuthHandler:     api.NewAuthHandler(userService, tokens),
		BookHandler:     api.NewBookHandler(bookService),
		CategoryHandler: api.NewCategoryHandler(categoryService, bookService),
		CartHandler:     api.NewCartHandler(cartService),
		OrderHandler:    api.NewOrderHandler(orderService),
		Metrics:         metrics.Handler(),
	})
	logger.Info("Routes registered", "count", len(r.Routes()))
	for _, route := range r.Routes() {
		logger.Debug("route", "pattern", route)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
