package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/analogalgo/letters/internal/api"
	apiMiddleware "github.com/analogalgo/letters/internal/api/middleware"
)

// requestTimeout bounds every request, including synchronous letter
// generation from the dashboard.
const requestTimeout = 30 * time.Second

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Timeout(requestTimeout))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	adminHandler := api.NewAdminHandler(app.authenticator, app.letterService, app.logger)
	webhookHandler := api.NewWebhookHandler(app.eventEmitter, app.logger)
	letterHandler := api.NewLetterHandler(app.letterService)
	engineHandler := api.NewEngineHandler(app.engineService)
	dashboardHandler := api.NewDashboardHandler("")
	healthHandler := api.NewHealthHandler()
	if app.db != nil {
		healthHandler.WithCheck("database", api.HealthCheckFunc(app.db.PingContext))
	}
	if app.redis != nil {
		healthHandler.WithCheck("redis", app.redis)
	}

	r.Get("/", dashboardHandler.Dashboard)
	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", adminHandler.Login)
		r.With(authMiddleware.Authenticate).Post("/generate-test", adminHandler.GenerateTest)
	})

	r.With(apiMiddleware.WebhookSignature(app.config.Auth.WebhookSecret)).
		Post("/webhook/storefront", webhookHandler.Storefront)

	r.Route("/api", func(r chi.Router) {
		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/letters", letterHandler.ListLetters)
			r.Get("/letters/{id}", letterHandler.GetLetter)
		})

		// Engine endpoints (public, read-only)
		r.Route("/engine", func(r chi.Router) {
			r.Get("/birth-card", engineHandler.BirthCard)
			r.Get("/spreads/{year}", engineHandler.Spread)
			r.Get("/chain", engineHandler.Chain)
			r.Post("/letter-data", engineHandler.LetterData)
			r.Get("/calendar", engineHandler.Calendar)
		})
	})

	return r
}
