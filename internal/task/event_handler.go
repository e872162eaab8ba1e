package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/analogalgo/letters/internal/events"
)

// TaskFactory creates the task for an order.
type TaskFactory interface {
	CreateTask(orderID string) (Task, error)
}

// TaskSubmitter accepts tasks for background execution.
type TaskSubmitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler turns LetterRequested events into submitted tasks.
type TaskFactoryEventHandler struct {
	factory TaskFactory
	runner  TaskSubmitter
	logger  *slog.Logger
}

var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)

// NewTaskFactoryEventHandler creates a handler that submits tasks to runner.
func NewTaskFactoryEventHandler(factory TaskFactory, runner TaskSubmitter, logger *slog.Logger) *TaskFactoryEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskFactoryEventHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With(slog.String("component", "task_factory_event_handler")),
	}
}

// HandleEvent ignores events of other types.
func (h *TaskFactoryEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	log := h.logger.With(slog.String("event_id", event.ID.String()))

	if event.Type != events.TypeLetterRequested {
		log.DebugContext(ctx, "ignoring event with unsupported type", slog.String("event_type", event.Type))
		return nil
	}

	var payload events.LetterRequested
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	task, err := h.factory.CreateTask(payload.OrderID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.runner.Submit(ctx, task); err != nil {
		return fmt.Errorf("failed to submit task: %w", err)
	}

	log.InfoContext(ctx, "letter task submitted",
		slog.String("task_id", task.ID().String()),
		slog.String("order_id", payload.OrderID))
	return nil
}
