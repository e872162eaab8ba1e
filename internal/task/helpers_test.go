package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/analogalgo/letters/internal/domain"
)

// stubTask is a Task whose behaviour is set per test.
type stubTask struct {
	id        uuid.UUID
	taskType  string
	payload   []byte
	ExecuteFn func(ctx context.Context) error
}

func newStubTask(exec func(ctx context.Context) error) *stubTask {
	return &stubTask{
		id:        uuid.New(),
		taskType:  "stub",
		payload:   []byte(`{}`),
		ExecuteFn: exec,
	}
}

func (t *stubTask) ID() uuid.UUID      { return t.id }
func (t *stubTask) Type() string       { return t.taskType }
func (t *stubTask) Payload() []byte    { return t.payload }
func (t *stubTask) Status() TaskStatus { return TaskStatusPending }

func (t *stubTask) Execute(ctx context.Context) error {
	if t.ExecuteFn == nil {
		return nil
	}
	return t.ExecuteFn(ctx)
}

// restoreFunc adapts a function to Restorer.
type restoreFunc func(rec Record) (Task, error)

func (f restoreFunc) Restore(rec Record) (Task, error) { return f(rec) }

// stubRestorer rebuilds every record as a stub task that runs exec.
func stubRestorer(exec func(ctx context.Context) error) Restorer {
	return restoreFunc(func(rec Record) (Task, error) {
		if rec.Type != "stub" {
			return nil, ErrUnknownTaskType
		}
		return &stubTask{id: rec.ID, taskType: rec.Type, payload: rec.Payload, ExecuteFn: exec}, nil
	})
}

// failingTaskStore wraps MemoryTaskStore and fails selected calls.
type failingTaskStore struct {
	*MemoryTaskStore
	SaveErr    error
	PendingErr error
}

func (s *failingTaskStore) SaveTask(ctx context.Context, task Task) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	return s.MemoryTaskStore.SaveTask(ctx, task)
}

func (s *failingTaskStore) GetPendingTasks(ctx context.Context) ([]Record, error) {
	if s.PendingErr != nil {
		return nil, s.PendingErr
	}
	return s.MemoryTaskStore.GetPendingTasks(ctx)
}

// mockOrderFetcher implements OrderFetcher.
type mockOrderFetcher struct {
	FetchOrderFn func(ctx context.Context, orderID string) (*domain.Order, error)
}

func (m *mockOrderFetcher) FetchOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.FetchOrderFn(ctx, orderID)
}

// mockLetterGenerator implements LetterGenerator.
type mockLetterGenerator struct {
	GenerateForOrderFn func(ctx context.Context, order *domain.Order, targetDate string) (*domain.Letter, error)
}

func (m *mockLetterGenerator) GenerateForOrder(ctx context.Context, order *domain.Order, targetDate string) (*domain.Letter, error) {
	return m.GenerateForOrderFn(ctx, order, targetDate)
}

func sampleOrder(id string) *domain.Order {
	return &domain.Order{
		OrderID: id,
		Customer: domain.Customer{
			FirstName: "Cassidy",
			BirthDate: "1991-02-17",
		},
		ShippingAddress: domain.Address{
			Name:         "Cassidy Williams",
			AddressLine1: "123 Mystic Lane",
			City:         "Portland",
			State:        "OR",
			ZipCode:      "97204",
		},
		Items: []domain.LineItem{{SKU: domain.LetterSKU, Quantity: 1}},
	}
}

var errBoom = errors.New("boom")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
