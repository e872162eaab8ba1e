package task

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryTaskStore keeps task records in memory. It backs the runner when no
// database is configured, so recovery only covers the life of the process.
type MemoryTaskStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
	now     func() time.Time
}

var _ TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		records: make(map[uuid.UUID]Record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SaveTask implements TaskStore.
func (s *MemoryTaskStore) SaveTask(_ context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.records[task.ID()] = Record{
		ID:        task.ID(),
		Type:      task.Type(),
		Payload:   append([]byte(nil), task.Payload()...),
		Status:    task.Status(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// UpdateTaskStatus implements TaskStore.
func (s *MemoryTaskStore) UpdateTaskStatus(_ context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[taskID]
	if !ok {
		return nil
	}
	rec.Status = status
	rec.ErrorMessage = errorMsg
	rec.UpdatedAt = s.now()
	s.records[taskID] = rec
	return nil
}

// GetPendingTasks implements TaskStore.
func (s *MemoryTaskStore) GetPendingTasks(context.Context) ([]Record, error) {
	return s.filter(TaskStatusPending, time.Time{}), nil
}

// GetProcessingTasks implements TaskStore.
func (s *MemoryTaskStore) GetProcessingTasks(context.Context) ([]Record, error) {
	return s.filter(TaskStatusProcessing, time.Time{}), nil
}

// GetStuckTasks implements TaskStore.
func (s *MemoryTaskStore) GetStuckTasks(_ context.Context, olderThan time.Duration) ([]Record, error) {
	return s.filter(TaskStatusProcessing, s.now().Add(-olderThan)), nil
}

// WithTx returns the store itself.
func (s *MemoryTaskStore) WithTx(*sql.Tx) TaskStore {
	return s
}

// Get returns the record for id.
func (s *MemoryTaskStore) Get(id uuid.UUID) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

func (s *MemoryTaskStore) filter(status TaskStatus, updatedBefore time.Time) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, rec := range s.records {
		if rec.Status != status {
			continue
		}
		if !updatedBefore.IsZero() && !rec.UpdatedAt.Before(updatedBefore) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
