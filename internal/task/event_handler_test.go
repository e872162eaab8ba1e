package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/events"
)

type submitFunc func(ctx context.Context, task Task) error

func (f submitFunc) Submit(ctx context.Context, task Task) error { return f(ctx, task) }

func TestTaskFactoryEventHandler(t *testing.T) {
	t.Parallel()

	factory := newFactory(t, &mockOrderFetcher{}, &mockLetterGenerator{})

	t.Run("letter requested is submitted", func(t *testing.T) {
		t.Parallel()
		var submitted []Task
		h := NewTaskFactoryEventHandler(factory, submitFunc(func(_ context.Context, task Task) error {
			submitted = append(submitted, task)
			return nil
		}), nil)

		event, err := events.NewLetterRequestedEvent("TT-42")
		require.NoError(t, err)
		require.NoError(t, h.HandleEvent(context.Background(), event))

		require.Len(t, submitted, 1)
		assert.Equal(t, "TT-42", submitted[0].(*LetterGenerationTask).OrderID())
	})

	t.Run("other events are ignored", func(t *testing.T) {
		t.Parallel()
		h := NewTaskFactoryEventHandler(factory, submitFunc(func(context.Context, Task) error {
			t.Fatal("unexpected submit")
			return nil
		}), nil)

		event, err := events.NewTaskRequestEvent("planner_export", map[string]string{})
		require.NoError(t, err)
		assert.NoError(t, h.HandleEvent(context.Background(), event))
	})

	t.Run("submit failure is returned", func(t *testing.T) {
		t.Parallel()
		h := NewTaskFactoryEventHandler(factory, submitFunc(func(context.Context, Task) error {
			return errBoom
		}), nil)

		event, err := events.NewLetterRequestedEvent("TT-43")
		require.NoError(t, err)
		assert.ErrorIs(t, h.HandleEvent(context.Background(), event), errBoom)
	})

	t.Run("empty order id is rejected", func(t *testing.T) {
		t.Parallel()
		h := NewTaskFactoryEventHandler(factory, submitFunc(func(context.Context, Task) error { return nil }), nil)

		event, err := events.NewTaskRequestEvent(events.TypeLetterRequested, events.LetterRequested{})
		require.NoError(t, err)
		assert.ErrorIs(t, h.HandleEvent(context.Background(), event), ErrEmptyOrderID)
	})
}
