package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/analogalgo/letters/internal/domain"
)

// MemoryLetterStore keeps letters in process memory. Letters are copied in
// and out so callers never share state with the store.
type MemoryLetterStore struct {
	mu      sync.RWMutex
	letters map[uuid.UUID]domain.Letter
}

var _ LetterStore = (*MemoryLetterStore)(nil)

// NewMemoryLetterStore creates an empty store.
func NewMemoryLetterStore() *MemoryLetterStore {
	return &MemoryLetterStore{letters: make(map[uuid.UUID]domain.Letter)}
}

// Create implements LetterStore.
func (s *MemoryLetterStore) Create(ctx context.Context, letter *domain.Letter) error {
	if err := letter.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.letters[letter.ID]; ok {
		return ErrLetterExists
	}
	s.letters[letter.ID] = cloneLetter(letter)
	return nil
}

// GetByID implements LetterStore.
func (s *MemoryLetterStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Letter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.letters[id]
	if !ok {
		return nil, ErrLetterNotFound
	}
	out := cloneLetter(&l)
	return &out, nil
}

// List implements LetterStore.
func (s *MemoryLetterStore) List(ctx context.Context, limit int) ([]*domain.Letter, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	all := make([]*domain.Letter, 0, len(s.letters))
	for _, l := range s.letters {
		c := cloneLetter(&l)
		all = append(all, &c)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Update implements LetterStore.
func (s *MemoryLetterStore) Update(ctx context.Context, letter *domain.Letter) error {
	if err := letter.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.letters[letter.ID]; !ok {
		return ErrLetterNotFound
	}
	s.letters[letter.ID] = cloneLetter(letter)
	return nil
}

// WithTx returns the store itself; memory writes are not transactional.
func (s *MemoryLetterStore) WithTx(*sql.Tx) LetterStore {
	return s
}

func cloneLetter(l *domain.Letter) domain.Letter {
	c := *l
	if l.EngineData != nil {
		c.EngineData = append([]byte(nil), l.EngineData...)
	}
	return c
}
