package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/store"
	"github.com/analogalgo/letters/internal/task"
)

type fakeTask struct {
	id uuid.UUID
}

func (f fakeTask) ID() uuid.UUID                 { return f.id }
func (f fakeTask) Type() string                  { return task.TaskTypeLetterGeneration }
func (f fakeTask) Payload() []byte               { return []byte(`{"order_id":"TT-1"}`) }
func (f fakeTask) Status() task.TaskStatus       { return task.TaskStatusPending }
func (f fakeTask) Execute(context.Context) error { return nil }

var taskColumnNames = []string{"id", "type", "payload", "status", "error_message", "created_at", "updated_at"}

func newMockTaskStore(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewPostgresTaskStore(db, nil)
	s.now = func() time.Time { return now }
	return s, mock, now
}

func TestTaskStoreSaveTask(t *testing.T) {
	t.Parallel()

	s, mock, now := newMockTaskStore(t)
	ft := fakeTask{id: uuid.New()}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(ft.id, task.TaskTypeLetterGeneration, ft.Payload(), "pending", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.SaveTask(context.Background(), ft))

	mock.ExpectExec("INSERT INTO tasks").WillReturnError(errors.New("disk full"))
	var storeErr *store.StoreError
	assert.ErrorAs(t, s.SaveTask(context.Background(), ft), &storeErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreUpdateTaskStatus(t *testing.T) {
	t.Parallel()

	s, mock, now := newMockTaskStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET status = $1")).
		WithArgs("failed", "boom", now, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.UpdateTaskStatus(context.Background(), id, task.TaskStatusFailed, "boom"))

	mock.ExpectExec("UPDATE tasks").
		WithArgs("completed", nil, now, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, s.UpdateTaskStatus(context.Background(), id, task.TaskStatusCompleted, ""),
		"missing task is not an error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreQueries(t *testing.T) {
	t.Parallel()

	s, mock, now := newMockTaskStore(t)
	id := uuid.New()
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(taskColumnNames).
			AddRow(id.String(), task.TaskTypeLetterGeneration, []byte(`{"order_id":"TT-1"}`), "processing", nil, now, now)
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY")).WithArgs("pending").WillReturnRows(rows())
	pending, err := s.GetPendingTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.JSONEq(t, `{"order_id":"TT-1"}`, string(pending[0].Payload))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY")).WithArgs("processing").WillReturnRows(rows())
	processing, err := s.GetProcessingTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, task.TaskStatusProcessing, processing[0].Status)

	mock.ExpectQuery(regexp.QuoteMeta("AND updated_at < $2")).
		WithArgs("processing", now.Add(-30*time.Minute)).
		WillReturnRows(rows())
	stuck, err := s.GetStuckTasks(context.Background(), 30*time.Minute)
	require.NoError(t, err)
	assert.Len(t, stuck, 1)

	mock.ExpectQuery("FROM tasks").WillReturnError(errors.New("timeout"))
	_, err = s.GetPendingTasks(context.Background())
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
