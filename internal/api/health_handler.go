package api

import (
	"context"
	"net/http"
	"time"

	"github.com/analogalgo/letters/internal/api/shared"
	"github.com/analogalgo/letters/internal/platform/logger"
	"github.com/analogalgo/letters/internal/redact"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether a backing service answers.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheckFunc adapts a function such as (*sql.DB).PingContext.
type HealthCheckFunc func(ctx context.Context) error

// Health implements HealthChecker.
func (f HealthCheckFunc) Health(ctx context.Context) error {
	return f(ctx)
}

type namedCheck struct {
	name    string
	checker HealthChecker
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	checks []namedCheck
}

// NewHealthHandler creates a HealthHandler with no dependency checks.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// WithCheck adds a dependency probed on every request. Nil checkers are
// skipped so optional backends can be passed unconditionally.
func (h *HealthHandler) WithCheck(name string, checker HealthChecker) *HealthHandler {
	if checker != nil {
		h.checks = append(h.checks, namedCheck{name: name, checker: checker})
	}
	return h
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health answers 200 when every dependency is reachable and 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for _, c := range h.checks {
		if err := c.checker.Health(ctx); err != nil {
			logger.FromContext(r.Context()).Warn("health check failed",
				"dependency", c.name,
				"error", redact.Error(err))
			resp.Checks[c.name] = "unavailable"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.name] = "ok"
	}
	shared.RespondWithJSON(w, r, status, resp)
}
