package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/analogalgo/letters/internal/platform/metrics"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// StuckTaskAge defines how long a task can be in processing state
	// before it's considered stuck and reset
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval defines how often to check for stuck tasks.
	// If zero, defaults to 5 minutes.
	StuckTaskCheckInterval time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// TaskRunner persists submitted tasks, queues them and executes them on a
// worker pool.
type TaskRunner struct {
	store    TaskStore
	restorer Restorer
	queue    *TaskQueue
	pool     *WorkerPool
	config   TaskRunnerConfig
	logger   *slog.Logger
	metrics  *metrics.Metrics

	errHandler func(task Task, err error)

	monitorCancel context.CancelFunc
	monitorWG     sync.WaitGroup
}

// RunnerOption configures a TaskRunner.
type RunnerOption func(*TaskRunner)

// WithRunnerMetrics records processed tasks on m.
func WithRunnerMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *TaskRunner) { r.metrics = m }
}

// WithErrorHandler is called after a task fails.
func WithErrorHandler(handler func(task Task, err error)) RunnerOption {
	return func(r *TaskRunner) { r.errHandler = handler }
}

// NewTaskRunner creates a runner. restorer rebuilds tasks found in the store
// at startup.
func NewTaskRunner(store TaskStore, restorer Restorer, config TaskRunnerConfig, logger *slog.Logger, opts ...RunnerOption) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	if config.StuckTaskCheckInterval <= 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	r := &TaskRunner{
		store:    store,
		restorer: restorer,
		config:   config,
		logger:   logger.With(slog.String("component", "task_runner")),
	}
	r.errHandler = func(Task, error) {}
	r.queue = NewTaskQueue(config.QueueSize, r.logger)
	r.pool = NewWorkerPool(r.queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, r.processTask, r.logger)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit persists task and queues it. A task that cannot be queued is marked
// failed so it is never run; the caller gets the queue error and may submit
// the work again.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	if err := r.queue.Enqueue(task); err != nil {
		if uerr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, "not queued: "+err.Error()); uerr != nil {
			r.logger.ErrorContext(ctx, "failed to mark unqueued task failed",
				slog.String("task_id", task.ID().String()),
				slog.String("error", uerr.Error()))
		}
		r.metrics.IncrementTask(task.Type(), metrics.OutcomeFailure)
		return fmt.Errorf("failed to queue task %s: %w", task.ID(), err)
	}
	return nil
}

// Start recovers unfinished tasks, then starts the workers and the stuck
// task monitor.
func (r *TaskRunner) Start(ctx context.Context) error {
	if err := r.Recover(ctx); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	r.pool.Start()

	monitorCtx, cancel := context.WithCancel(context.Background())
	r.monitorCancel = cancel
	r.monitorWG.Add(1)
	go r.stuckTaskMonitor(monitorCtx)

	r.logger.InfoContext(ctx, "task runner started",
		slog.Int("workers", r.pool.workerCount),
		slog.Int("queue_size", r.config.QueueSize))
	return nil
}

// Stop halts the monitor, lets in-flight tasks finish and closes the queue.
// Queued but unstarted tasks remain pending in the store.
func (r *TaskRunner) Stop() {
	if r.monitorCancel != nil {
		r.monitorCancel()
		r.monitorWG.Wait()
	}
	r.pool.Stop()
	r.queue.Close()
}

// Recover requeues pending tasks and resets interrupted processing tasks to
// pending.
func (r *TaskRunner) Recover(ctx context.Context) error {
	pending, err := r.store.GetPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}
	processing, err := r.store.GetProcessingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	r.logger.InfoContext(ctx, "recovering unfinished tasks",
		slog.Int("pending_count", len(pending)),
		slog.Int("processing_count", len(processing)))

	for _, rec := range pending {
		r.requeue(ctx, rec)
	}
	for _, rec := range processing {
		if err := r.store.UpdateTaskStatus(ctx, rec.ID, TaskStatusPending, "reset after recovery"); err != nil {
			r.logger.ErrorContext(ctx, "failed to reset processing task",
				slog.String("task_id", rec.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		r.requeue(ctx, rec)
	}
	return nil
}

func (r *TaskRunner) requeue(ctx context.Context, rec Record) {
	log := r.logger.With(
		slog.String("task_id", rec.ID.String()),
		slog.String("task_type", rec.Type))

	task, err := r.restorer.Restore(rec)
	if err != nil {
		log.ErrorContext(ctx, "cannot restore task", slog.String("error", err.Error()))
		if uerr := r.store.UpdateTaskStatus(ctx, rec.ID, TaskStatusFailed, err.Error()); uerr != nil {
			log.ErrorContext(ctx, "failed to mark unrestorable task failed", slog.String("error", uerr.Error()))
		}
		return
	}
	if err := r.queue.Enqueue(task); err != nil {
		log.ErrorContext(ctx, "failed to requeue task", slog.String("error", err.Error()))
	}
}

func (r *TaskRunner) processTask(ctx context.Context, task Task, workerID int) {
	log := r.logger.With(
		slog.String("task_id", task.ID().String()),
		slog.String("task_type", task.Type()),
		slog.Int("worker_id", workerID))

	if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusProcessing, ""); err != nil {
		log.ErrorContext(ctx, "failed to mark task processing", slog.String("error", err.Error()))
		return
	}

	log.InfoContext(ctx, "processing task")
	err := r.execute(ctx, task)
	if err != nil {
		log.ErrorContext(ctx, "task execution failed", slog.String("error", err.Error()))
		if uerr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error()); uerr != nil {
			log.ErrorContext(ctx, "failed to mark task failed", slog.String("error", uerr.Error()))
		}
		r.metrics.IncrementTask(task.Type(), metrics.OutcomeFailure)
		r.errHandler(task, err)
		return
	}

	if uerr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusCompleted, ""); uerr != nil {
		log.ErrorContext(ctx, "failed to mark task completed", slog.String("error", uerr.Error()))
	}
	r.metrics.IncrementTask(task.Type(), metrics.OutcomeSuccess)
	log.InfoContext(ctx, "task completed")
}

// execute turns a panicking task into a failed one so that a worker survives it.
func (r *TaskRunner) execute(ctx context.Context, task Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return task.Execute(ctx)
}

func (r *TaskRunner) stuckTaskMonitor(ctx context.Context) {
	defer r.monitorWG.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.resetStuckTasks(ctx)
		}
	}
}

// resetStuckTasks requeues tasks that have been processing for longer than
// the configured StuckTaskAge.
func (r *TaskRunner) resetStuckTasks(ctx context.Context) {
	stuck, err := r.store.GetStuckTasks(ctx, r.config.StuckTaskAge)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to check for stuck tasks", slog.String("error", err.Error()))
		return
	}
	if len(stuck) == 0 {
		return
	}

	r.logger.WarnContext(ctx, "found stuck tasks", slog.Int("count", len(stuck)))
	for _, rec := range stuck {
		if err := r.store.UpdateTaskStatus(ctx, rec.ID, TaskStatusPending, "reset after being stuck in processing"); err != nil {
			r.logger.ErrorContext(ctx, "failed to reset stuck task",
				slog.String("task_id", rec.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		r.metrics.IncrementTask(rec.Type, metrics.OutcomeRetry)
		r.requeue(ctx, rec)
	}
}
