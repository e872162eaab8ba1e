package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/analogalgo/letters/internal/domain"
)

// Common errors
var (
	ErrNilOrderFetcher    = errors.New("order fetcher cannot be nil")
	ErrNilLetterGenerator = errors.New("letter generator cannot be nil")
	ErrEmptyOrderID       = errors.New("order ID cannot be empty")
	ErrUnknownTaskType    = errors.New("unknown task type")
)

// OrderFetcher loads the storefront order a task was created for.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// LetterGenerator produces, renders and mails the letter for an order.
type LetterGenerator interface {
	GenerateForOrder(ctx context.Context, order *domain.Order, targetDate string) (*domain.Letter, error)
}

type letterGenerationPayload struct {
	OrderID string `json:"order_id"`
}

// LetterGenerationTask fulfils one storefront order.
type LetterGenerationTask struct {
	id      uuid.UUID
	orderID string
	orders  OrderFetcher
	letters LetterGenerator
	now     func() time.Time
	logger  *slog.Logger
	status  TaskStatus
}

var _ Task = (*LetterGenerationTask)(nil)

// ID returns the task's unique identifier
func (t *LetterGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns TaskTypeLetterGeneration.
func (t *LetterGenerationTask) Type() string {
	return TaskTypeLetterGeneration
}

// OrderID returns the order the task fulfils.
func (t *LetterGenerationTask) OrderID() string {
	return t.orderID
}

// Payload encodes the order ID.
func (t *LetterGenerationTask) Payload() []byte {
	data, err := json.Marshal(letterGenerationPayload{OrderID: t.orderID})
	if err != nil {
		t.logger.Error("failed to marshal task payload", slog.String("error", err.Error()))
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *LetterGenerationTask) Status() TaskStatus {
	return t.status
}

// Execute fetches the order and hands it to the letter generator. The
// reading targets the 15th of the month in which the task runs.
func (t *LetterGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.InfoContext(ctx, "starting letter generation task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	order, err := t.orders.FetchOrder(ctx, t.orderID)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if err := order.Validate(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("order %s cannot be fulfilled: %w", t.orderID, err)
	}

	now := t.now()
	target := time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	letter, err := t.letters.GenerateForOrder(ctx, order, target)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to generate letter: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.InfoContext(ctx, "letter generation task completed",
		slog.String("letter_id", letter.ID.String()),
		slog.String("carrier_id", letter.CarrierID))
	return nil
}
