package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/domain"
)

func newTestLetter(t *testing.T, name string) *domain.Letter {
	t.Helper()
	l, err := domain.NewLetter(domain.LetterSourceAdmin, name, "1991-02-17", "2026-03-15", "")
	require.NoError(t, err)
	return l
}

func TestMemoryLetterStoreCRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryLetterStore()
	letter := newTestLetter(t, "Cassidy")
	letter.EngineData = json.RawMessage(`{"birth_card":"8♦"}`)

	require.NoError(t, s.Create(ctx, letter))
	assert.ErrorIs(t, s.Create(ctx, letter), ErrLetterExists)

	got, err := s.GetByID(ctx, letter.ID)
	require.NoError(t, err)
	assert.Equal(t, letter, got)

	// Mutating the returned copy must not touch the stored letter.
	got.EngineData[2] = 'X'
	got.FirstName = "Changed"
	again, err := s.GetByID(ctx, letter.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cassidy", again.FirstName)
	assert.JSONEq(t, `{"birth_card":"8♦"}`, string(again.EngineData))

	letter.MarkMailed("/tmp/letter.pdf", "ltr_123456")
	require.NoError(t, s.Update(ctx, letter))
	updated, err := s.GetByID(ctx, letter.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LetterStatusMailed, updated.Status)
	assert.Equal(t, "ltr_123456", updated.CarrierID)
}

func TestMemoryLetterStoreErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryLetterStore()

	_, err := s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrLetterNotFound)
	assert.True(t, IsNotFoundError(err))

	assert.ErrorIs(t, s.Update(ctx, newTestLetter(t, "Ghost")), ErrLetterNotFound)

	invalid := newTestLetter(t, "Cassidy")
	invalid.FirstName = ""
	err = s.Create(ctx, invalid)
	assert.ErrorIs(t, err, ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrEmptyLetterName)
}

func TestMemoryLetterStoreList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryLetterStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"Ada", "Ben", "Cleo"}
	for i, name := range names {
		l := newTestLetter(t, name)
		l.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.Create(ctx, l))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Cleo", all[0].FirstName)
	assert.Equal(t, "Ada", all[2].FirstName)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "Ben", limited[1].FirstName)

	assert.Same(t, s, s.WithTx(nil))
}
