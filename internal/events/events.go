package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// TypeLetterRequested is emitted when a storefront order asks for a letter.
	TypeLetterRequested = "letter_requested"
)

// ErrEmptyOrderID is returned when a letter request carries no order.
var ErrEmptyOrderID = errors.New("letter request has no order id")

// TaskRequestEvent asks for a background task to be created. The payload is
// opaque JSON so that emitters need no knowledge of the task package.
type TaskRequestEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent creates an event of the given type with payload
// encoded as JSON.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// LetterRequested is the payload of a TypeLetterRequested event.
type LetterRequested struct {
	OrderID string `json:"order_id"`
}

// NewLetterRequestedEvent creates the event for a storefront order.
func NewLetterRequestedEvent(orderID string) (*TaskRequestEvent, error) {
	if orderID == "" {
		return nil, ErrEmptyOrderID
	}
	return NewTaskRequestEvent(TypeLetterRequested, LetterRequested{OrderID: orderID})
}

// EventHandler processes emitted events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter publishes events to the registered handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
