package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/analogalgo/letters/internal/config"
	"github.com/analogalgo/letters/internal/events"
	"github.com/analogalgo/letters/internal/integrations/mail"
	"github.com/analogalgo/letters/internal/integrations/storefront"
	"github.com/analogalgo/letters/internal/narrative"
	"github.com/analogalgo/letters/internal/pdf"
	"github.com/analogalgo/letters/internal/platform/metrics"
	"github.com/analogalgo/letters/internal/platform/postgres"
	"github.com/analogalgo/letters/internal/platform/redis"
	"github.com/analogalgo/letters/internal/service"
	"github.com/analogalgo/letters/internal/service/auth"
	"github.com/analogalgo/letters/internal/store"
	"github.com/analogalgo/letters/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger   *slog.Logger
	db       *sql.DB
	redis    *redis.Client
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Stores (using interfaces for proper abstraction)
	letterStore store.LetterStore
	taskStore   task.TaskStore

	// Service interfaces
	jwtService    auth.JWTService
	authenticator *auth.AdminAuthenticator
	letterService service.LetterService
	engineService service.EngineService

	// Event system
	eventEmitter events.EventEmitter

	// Task handling
	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. Without a database URL letters and tasks are kept in memory;
// without a Redis URL engine results are not cached.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewWithRegistry(app.registry)

	ok := false
	defer func() {
		if !ok {
			app.cleanup()
		}
	}()

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	// Letter data cache
	var kv redis.KV
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if client != nil {
		app.redis = client
		kv = client
		logger.Info("Redis letter data cache enabled", "ttl", cfg.Redis.CacheTTL.String())
	}
	cache := redis.NewLetterDataCache(kv, cfg.Redis.CacheTTL, logger, redis.WithCacheMetrics(app.metrics))

	// Initialize JWT service
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.authenticator = auth.NewAdminAuthenticator(cfg.Auth.AdminPasswordHash, auth.NewBcryptVerifier(), app.jwtService)
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Letter pipeline
	composer, err := narrative.NewComposer()
	if err != nil {
		return nil, fmt.Errorf("failed to load letter templates: %w", err)
	}
	carrier := mail.NewCarrier(logger, cfg.Mail.MaxRetries, mail.WithMetrics(app.metrics))

	app.letterService, err = service.NewLetterService(
		app.letterStore,
		cache,
		composer,
		pdf.NewRenderer(cfg.Mail.OutputDir),
		carrier,
		logger,
		service.WithDB(app.db),
		service.WithLetterMetrics(app.metrics),
		service.WithDefaultAddress(cfg.Mail.DefaultAddress),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create letter service: %w", err)
	}

	app.engineService, err = service.NewEngineService(cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine service: %w", err)
	}

	// Background letter generation for storefront orders
	factory, err := task.NewLetterGenerationTaskFactory(storefront.NewClient(logger), app.letterService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task factory: %w", err)
	}

	app.taskRunner = task.NewTaskRunner(app.taskStore, factory, task.TaskRunnerConfig{
		QueueSize:    cfg.Task.QueueSize,
		WorkerCount:  cfg.Task.WorkerCount,
		StuckTaskAge: time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
	}, logger, task.WithRunnerMetrics(app.metrics))
	if err := app.taskRunner.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(task.NewTaskFactoryEventHandler(factory, app.taskRunner, logger))
	app.eventEmitter = emitter

	ok = true
	logger.Info("Application initialized successfully")
	return app, nil
}

// setupStores connects to PostgreSQL and applies migrations when a database
// URL is configured, and falls back to in-memory stores otherwise.
func (app *application) setupStores(ctx context.Context) error {
	if app.config.Database.URL == "" {
		app.logger.Warn("No database configured, letters and tasks are kept in memory")
		app.letterStore = store.NewMemoryLetterStore()
		app.taskStore = task.NewMemoryTaskStore()
		return nil
	}

	db, err := postgres.Open(ctx, app.config.Database.URL)
	if err != nil {
		return err
	}
	app.db = db
	app.logger.Info("Database connection established")

	if err := postgres.Migrate(ctx, db, app.logger); err != nil {
		return err
	}

	app.letterStore = postgres.NewPostgresLetterStore(db, app.logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, app.logger)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop task runner
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
