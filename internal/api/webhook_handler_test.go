package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/events"
	"github.com/analogalgo/letters/internal/task"
)

func TestWebhookStorefront(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		emitErr    error
		wantStatus int
		wantEvents int
	}{
		{"accepted", `{"order_id":"ord_1001","extra":"ignored"}`, nil, http.StatusAccepted, 1},
		{"empty order id", `{"order_id":"  "}`, nil, http.StatusBadRequest, 0},
		{"malformed body", `order_id=1`, nil, http.StatusBadRequest, 0},
		{"queue full", `{"order_id":"ord_1002"}`, task.ErrQueueFull, http.StatusServiceUnavailable, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			emitter := &recordingEmitter{err: tc.emitErr}
			h := NewWebhookHandler(emitter, nil)

			w := httptest.NewRecorder()
			h.Storefront(w, httptest.NewRequest(http.MethodPost, "/webhook/storefront", strings.NewReader(tc.body)))

			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			require.Len(t, emitter.events, tc.wantEvents)
			if tc.wantEvents == 0 {
				return
			}

			assert.Equal(t, map[string]interface{}{"status": "accepted", "order_id": "ord_1001"}, decodeBody(t, w))

			event := emitter.events[0]
			assert.Equal(t, events.TypeLetterRequested, event.Type)
			var payload events.LetterRequested
			require.NoError(t, event.UnmarshalPayload(&payload))
			assert.Equal(t, "ord_1001", payload.OrderID)
		})
	}
}
