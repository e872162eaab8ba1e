package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/analogalgo/letters/internal/platform/logger"
	"github.com/analogalgo/letters/internal/store"
	"github.com/analogalgo/letters/internal/task"
)

const taskColumns = `id, type, payload, status, error_message, created_at, updated_at`

// PostgresTaskStore implements task.TaskStore on PostgreSQL.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

var _ task.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a task store over db.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SaveTask implements task.TaskStore.
func (s *PostgresTaskStore) SaveTask(ctx context.Context, t task.Task) error {
	query := `INSERT INTO tasks (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := s.now()
	if _, err := s.db.ExecContext(ctx, query, t.ID(), t.Type(), t.Payload(), t.Status(), now, now); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to save task",
			slog.String("task_id", t.ID().String()),
			slog.String("task_type", t.Type()),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}
	return nil
}

// UpdateTaskStatus implements task.TaskStore. A missing task is logged and
// otherwise ignored.
func (s *PostgresTaskStore) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status task.TaskStatus, errorMsg string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE tasks SET status = $1, error_message = $2, updated_at = $3 WHERE id = $4`
	result, err := s.db.ExecContext(ctx, query, status, nullString(errorMsg), s.now(), taskID)
	if err != nil {
		log.ErrorContext(ctx, "failed to update task status",
			slog.String("task_id", taskID.String()),
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.WarnContext(ctx, "task status not updated",
			slog.String("task_id", taskID.String()),
			slog.String("reason", err.Error()))
	}
	return nil
}

// GetPendingTasks implements task.TaskStore.
func (s *PostgresTaskStore) GetPendingTasks(ctx context.Context) ([]task.Record, error) {
	return s.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE status = $1 ORDER BY created_at ASC`,
		task.TaskStatusPending)
}

// GetProcessingTasks implements task.TaskStore.
func (s *PostgresTaskStore) GetProcessingTasks(ctx context.Context) ([]task.Record, error) {
	return s.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE status = $1 ORDER BY created_at ASC`,
		task.TaskStatusProcessing)
}

// GetStuckTasks implements task.TaskStore.
func (s *PostgresTaskStore) GetStuckTasks(ctx context.Context, olderThan time.Duration) ([]task.Record, error) {
	return s.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE status = $1 AND updated_at < $2 ORDER BY created_at ASC`,
		task.TaskStatusProcessing, s.now().Add(-olderThan))
}

// WithTx implements task.TaskStore.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) task.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger, now: s.now}
}

func (s *PostgresTaskStore) query(ctx context.Context, query string, args ...any) ([]task.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var records []task.Record
	for rows.Next() {
		var (
			rec    task.Record
			status string
			errMsg sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Payload, &status, &errMsg, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		rec.Status = task.TaskStatus(status)
		rec.ErrorMessage = errMsg.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "iteration failed", err)
	}
	return records, nil
}
