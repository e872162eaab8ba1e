package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/analogalgo/letters/internal/api/shared"
	"github.com/analogalgo/letters/internal/events"
	"github.com/analogalgo/letters/internal/platform/logger"
)

// WebhookHandler accepts storefront order notifications. Letters are
// generated in the background; the handler only queues the work.
type WebhookHandler struct {
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(emitter events.EventEmitter, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{
		emitter: emitter,
		logger:  logger.With(slog.String("component", "webhook_handler")),
	}
}

// Storefront handles POST /webhook/storefront.
func (h *WebhookHandler) Storefront(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req WebhookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}
	orderID := strings.TrimSpace(req.OrderID)

	event, err := events.NewLetterRequestedEvent(orderID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to accept order")
		return
	}
	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		HandleAPIError(w, r, err, "Failed to accept order")
		return
	}

	log.InfoContext(r.Context(), "storefront order accepted", slog.String("order_id", orderID))
	shared.RespondWithJSON(w, r, http.StatusAccepted, WebhookResponse{Status: "accepted", OrderID: orderID})
}
