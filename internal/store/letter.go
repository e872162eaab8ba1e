package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/analogalgo/letters/internal/domain"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// LetterStore defines the interface for letter persistence.
type LetterStore interface {
	// Create saves a new letter. Returns ErrInvalidEntity if the letter
	// fails validation and ErrLetterExists if the ID is taken.
	Create(ctx context.Context, letter *domain.Letter) error

	// GetByID retrieves a letter by its unique ID.
	// Returns ErrLetterNotFound if the letter does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Letter, error)

	// List returns the most recently created letters, newest first.
	List(ctx context.Context, limit int) ([]*domain.Letter, error)

	// Update saves changes to an existing letter.
	// Returns ErrLetterNotFound if the letter does not exist.
	Update(ctx context.Context, letter *domain.Letter) error

	// WithTx returns a LetterStore that runs its queries in tx.
	WithTx(tx *sql.Tx) LetterStore
}
