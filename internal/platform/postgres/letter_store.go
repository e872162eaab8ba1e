package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/platform/logger"
	"github.com/analogalgo/letters/internal/store"
)

const dateLayout = "2006-01-02"

const letterColumns = `id, order_id, source, first_name, birth_date, target_date, status,
	engine_data, pdf_path, carrier_id, error_message, created_at, updated_at`

// PostgresLetterStore implements store.LetterStore on PostgreSQL.
type PostgresLetterStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.LetterStore = (*PostgresLetterStore)(nil)

// NewPostgresLetterStore creates a letter store over db, which may be a
// connection pool or a transaction.
func NewPostgresLetterStore(db store.DBTX, logger *slog.Logger) *PostgresLetterStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLetterStore{
		db:     db,
		logger: logger.With(slog.String("component", "letter_store")),
	}
}

// Create implements store.LetterStore.
func (s *PostgresLetterStore) Create(ctx context.Context, letter *domain.Letter) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := letter.Validate(); err != nil {
		log.WarnContext(ctx, "letter validation failed during create",
			slog.String("letter_id", letter.ID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	birth, target, err := letterDates(letter)
	if err != nil {
		return err
	}

	query := `INSERT INTO letters (` + letterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = s.db.ExecContext(ctx, query,
		letter.ID,
		nullString(letter.OrderID),
		letter.Source,
		letter.FirstName,
		birth,
		target,
		letter.Status,
		nullJSON(letter.EngineData),
		letter.PDFPath,
		letter.CarrierID,
		letter.ErrorMessage,
		letter.CreatedAt,
		letter.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrLetterExists
		}
		log.ErrorContext(ctx, "failed to create letter",
			slog.String("letter_id", letter.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("letter", "create", "insert failed", MapError(err))
	}

	log.DebugContext(ctx, "letter created", slog.String("letter_id", letter.ID.String()))
	return nil
}

// GetByID implements store.LetterStore.
func (s *PostgresLetterStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Letter, error) {
	query := `SELECT ` + letterColumns + ` FROM letters WHERE id = $1`

	letter, err := scanLetter(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLetterNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to get letter",
			slog.String("letter_id", id.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("letter", "get", "query failed", MapError(err))
	}
	return letter, nil
}

// List implements store.LetterStore.
func (s *PostgresLetterStore) List(ctx context.Context, limit int) ([]*domain.Letter, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	query := `SELECT ` + letterColumns + ` FROM letters ORDER BY created_at DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, store.NewStoreError("letter", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	letters := make([]*domain.Letter, 0, limit)
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, store.NewStoreError("letter", "list", "scan failed", err)
		}
		letters = append(letters, letter)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("letter", "list", "iteration failed", err)
	}
	return letters, nil
}

// Update implements store.LetterStore. Only the mutable processing fields
// are written.
func (s *PostgresLetterStore) Update(ctx context.Context, letter *domain.Letter) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := letter.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE letters
		SET status = $1, engine_data = $2, pdf_path = $3, carrier_id = $4,
			error_message = $5, updated_at = $6
		WHERE id = $7`
	result, err := s.db.ExecContext(ctx, query,
		letter.Status,
		nullJSON(letter.EngineData),
		letter.PDFPath,
		letter.CarrierID,
		letter.ErrorMessage,
		letter.UpdatedAt,
		letter.ID,
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to update letter",
			slog.String("letter_id", letter.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("letter", "update", "update failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrLetterNotFound)
}

// WithTx implements store.LetterStore.
func (s *PostgresLetterStore) WithTx(tx *sql.Tx) store.LetterStore {
	return &PostgresLetterStore{db: tx, logger: s.logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLetter(row rowScanner) (*domain.Letter, error) {
	var (
		l          domain.Letter
		orderID    sql.NullString
		source     string
		status     string
		birth      time.Time
		target     time.Time
		engineData []byte
	)
	err := row.Scan(
		&l.ID,
		&orderID,
		&source,
		&l.FirstName,
		&birth,
		&target,
		&status,
		&engineData,
		&l.PDFPath,
		&l.CarrierID,
		&l.ErrorMessage,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.OrderID = orderID.String
	l.Source = domain.LetterSource(source)
	l.Status = domain.LetterStatus(status)
	l.BirthDate = birth.Format(dateLayout)
	l.TargetDate = target.Format(dateLayout)
	if len(engineData) > 0 {
		l.EngineData = engineData
	}
	return &l, nil
}

func letterDates(l *domain.Letter) (time.Time, time.Time, error) {
	birth, err := time.Parse(dateLayout, l.BirthDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidLetterDate)
	}
	target, err := time.Parse(dateLayout, l.TargetDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidLetterDate)
	}
	return birth, target, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
