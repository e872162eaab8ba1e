package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LetterGenerationTaskFactory creates LetterGenerationTasks and restores
// them from the task store.
type LetterGenerationTaskFactory struct {
	orders  OrderFetcher
	letters LetterGenerator
	logger  *slog.Logger
	now     func() time.Time
}

var _ Restorer = (*LetterGenerationTaskFactory)(nil)

// NewLetterGenerationTaskFactory creates a factory.
func NewLetterGenerationTaskFactory(orders OrderFetcher, letters LetterGenerator, logger *slog.Logger) (*LetterGenerationTaskFactory, error) {
	if orders == nil {
		return nil, ErrNilOrderFetcher
	}
	if letters == nil {
		return nil, ErrNilLetterGenerator
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LetterGenerationTaskFactory{
		orders:  orders,
		letters: letters,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// CreateTask creates a pending task for orderID.
func (f *LetterGenerationTaskFactory) CreateTask(orderID string) (Task, error) {
	return f.build(uuid.New(), orderID)
}

// Restore rebuilds a persisted letter generation task.
func (f *LetterGenerationTaskFactory) Restore(rec Record) (Task, error) {
	if rec.Type != TaskTypeLetterGeneration {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskType, rec.Type)
	}
	var payload letterGenerationPayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		return nil, fmt.Errorf("invalid letter generation payload: %w", err)
	}
	return f.build(rec.ID, payload.OrderID)
}

func (f *LetterGenerationTaskFactory) build(id uuid.UUID, orderID string) (*LetterGenerationTask, error) {
	if orderID == "" {
		return nil, ErrEmptyOrderID
	}
	log := f.logger.With(
		slog.String("task_type", TaskTypeLetterGeneration),
		slog.String("task_id", id.String()),
		slog.String("order_id", orderID))
	return &LetterGenerationTask{
		id:      id,
		orderID: orderID,
		orders:  f.orders,
		letters: f.letters,
		now:     f.now,
		logger:  log,
		status:  TaskStatusPending,
	}, nil
}
