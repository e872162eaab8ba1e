package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/integrations/mail"
	"github.com/analogalgo/letters/internal/narrative"
	"github.com/analogalgo/letters/internal/pdf"
	"github.com/analogalgo/letters/internal/platform/logger"
	"github.com/analogalgo/letters/internal/platform/metrics"
	"github.com/analogalgo/letters/internal/redact"
	"github.com/analogalgo/letters/internal/store"
	"github.com/analogalgo/letters/internal/task"
)

// LetterDataCalculator computes engine output. The Redis letter data cache
// implements it.
type LetterDataCalculator interface {
	Calculate(ctx context.Context, req cardology.Request) cardology.LetterResult
}

// LetterComposer turns engine output into letter paragraphs.
type LetterComposer interface {
	Compose(firstName string, data *cardology.LetterData, target time.Time) (narrative.Letter, error)
}

// LetterRenderer writes a composed letter to a file and returns its path.
type LetterRenderer interface {
	WriteFile(name string, letter narrative.Letter) (string, error)
}

// LetterRequest describes one letter to generate and mail.
type LetterRequest struct {
	FirstName  string
	BirthDate  string // YYYY-MM-DD
	TargetDate string // YYYY-MM-DD
	OrderID    string
	Address    domain.Address
	Source     domain.LetterSource
}

// LetterService provides letter-related operations
type LetterService interface {
	// GenerateAndMail computes the reading, persists the letter, renders the
	// PDF and hands it to the mail carrier. An engine rejection is returned
	// as an *EngineError before anything is persisted. When rendering or
	// mailing fails, the letter is marked failed and returned with the error.
	GenerateAndMail(ctx context.Context, req LetterRequest) (*domain.Letter, error)

	// GenerateForOrder fulfils a storefront order for the given target date.
	GenerateForOrder(ctx context.Context, order *domain.Order, targetDate string) (*domain.Letter, error)

	// GetLetter retrieves a letter by its ID
	GetLetter(ctx context.Context, id uuid.UUID) (*domain.Letter, error)

	// ListLetters returns the most recent letters, newest first
	ListLetters(ctx context.Context, limit int) ([]*domain.Letter, error)
}

// LetterServiceOption configures the letter service.
type LetterServiceOption func(*letterServiceImpl)

// WithDB runs letter writes in transactions on db. Without it the store is
// used directly.
func WithDB(db *sql.DB) LetterServiceOption {
	return func(s *letterServiceImpl) { s.db = db }
}

// WithLetterMetrics records generated letters on m.
func WithLetterMetrics(m *metrics.Metrics) LetterServiceOption {
	return func(s *letterServiceImpl) { s.metrics = m }
}

// WithDefaultAddress sets the address used when a request carries none.
func WithDefaultAddress(addr domain.Address) LetterServiceOption {
	return func(s *letterServiceImpl) { s.defaultAddress = addr }
}

// letterServiceImpl implements the LetterService interface
type letterServiceImpl struct {
	letters        store.LetterStore
	db             *sql.DB
	calculator     LetterDataCalculator
	composer       LetterComposer
	renderer       LetterRenderer
	sender         mail.Sender
	metrics        *metrics.Metrics
	defaultAddress domain.Address
	logger         *slog.Logger
}

var _ task.LetterGenerator = (*letterServiceImpl)(nil)

// NewLetterService creates a new LetterService.
// It returns an error if any of the required dependencies are nil.
func NewLetterService(
	letters store.LetterStore,
	calculator LetterDataCalculator,
	composer LetterComposer,
	renderer LetterRenderer,
	sender mail.Sender,
	logger *slog.Logger,
	opts ...LetterServiceOption,
) (LetterService, error) {
	required := []struct {
		name    string
		missing bool
	}{
		{"letters", letters == nil},
		{"calculator", calculator == nil},
		{"composer", composer == nil},
		{"renderer", renderer == nil},
		{"sender", sender == nil},
	}
	for _, dep := range required {
		if dep.missing {
			return nil, &LetterServiceError{
				Operation: "create_service",
				Message:   dep.name + " cannot be nil",
			}
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &letterServiceImpl{
		letters:    letters,
		calculator: calculator,
		composer:   composer,
		renderer:   renderer,
		sender:     sender,
		logger:     logger.With(slog.String("component", "letter_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GenerateAndMail implements LetterService.
func (s *letterServiceImpl) GenerateAndMail(ctx context.Context, req LetterRequest) (*domain.Letter, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("source", string(req.Source)),
		slog.String("order_id", req.OrderID))

	birth, target, err := parseRequestDates(req)
	if err != nil {
		s.metrics.IncrementLetters(string(req.Source), metrics.OutcomeFailure)
		return nil, err
	}

	// 1. Run the engine
	result := s.calculator.Calculate(ctx, cardology.Request{
		Name:       req.FirstName,
		BirthYear:  birth.Year(),
		BirthMonth: int(birth.Month()),
		BirthDay:   birth.Day(),
		TargetDate: req.TargetDate,
	})
	if !result.OK() {
		s.metrics.IncrementLetters(string(req.Source), metrics.OutcomeFailure)
		log.WarnContext(ctx, "engine rejected letter request", slog.String("engine_error", result.Error))
		return nil, &EngineError{Message: result.Error}
	}

	engineData, err := json.Marshal(result.LetterData)
	if err != nil {
		return nil, NewLetterServiceError("encode_engine_data", "failed to encode engine data", err)
	}

	// 2. Persist the pending letter
	letter, err := domain.NewLetter(req.Source, req.FirstName, req.BirthDate, req.TargetDate, req.OrderID)
	if err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}
	letter.EngineData = engineData

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.storeFor(tx).Create(ctx, letter)
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to persist letter", slog.String("error", redact.Error(err)))
		s.metrics.IncrementLetters(string(req.Source), metrics.OutcomeFailure)
		return nil, NewLetterServiceError("persist_letter", "failed to save letter", err)
	}
	log = log.With(slog.String("letter_id", letter.ID.String()))

	// 3. Compose, render and mail
	receipt, pdfPath, err := s.deliver(ctx, letter, req, result.LetterData, target)
	if err != nil {
		log.ErrorContext(ctx, "letter delivery failed", slog.String("error", redact.Error(err)))
		letter.PDFPath = pdfPath
		letter.MarkFailed(redact.Error(err))
		if updateErr := s.update(ctx, letter); updateErr != nil {
			log.ErrorContext(ctx, "failed to mark letter as failed", slog.String("error", redact.Error(updateErr)))
		}
		s.metrics.IncrementLetters(string(req.Source), metrics.OutcomeFailure)
		return letter, err
	}

	// 4. Record the hand-off
	letter.MarkMailed(pdfPath, receipt.ID)
	if err := s.update(ctx, letter); err != nil {
		log.ErrorContext(ctx, "failed to mark letter as mailed", slog.String("error", redact.Error(err)))
		s.metrics.IncrementLetters(string(req.Source), metrics.OutcomeFailure)
		return letter, NewLetterServiceError("update_letter", "letter was mailed but its status could not be saved", err)
	}

	s.metrics.IncrementLetters(string(req.Source), metrics.OutcomeSuccess)
	log.InfoContext(ctx, "letter generated and mailed",
		slog.String("carrier_id", receipt.ID),
		slog.String("expected_delivery_date", receipt.ExpectedDeliveryDate))
	return letter, nil
}

// deliver composes, renders and mails letter. The PDF path is returned even
// when mailing fails so the failed letter still points at its file.
func (s *letterServiceImpl) deliver(
	ctx context.Context,
	letter *domain.Letter,
	req LetterRequest,
	data *cardology.LetterData,
	target time.Time,
) (*mail.Receipt, string, error) {
	if err := letter.UpdateStatus(domain.LetterStatusProcessing); err != nil {
		return nil, "", NewLetterServiceError("update_status", "failed to mark letter processing", err)
	}

	body, err := s.composer.Compose(req.FirstName, data, target)
	if err != nil {
		return nil, "", NewLetterServiceError("compose_letter", "failed to compose letter", err)
	}

	pdfPath, err := s.renderer.WriteFile(fileName(req), body)
	if err != nil {
		return nil, "", NewLetterServiceError("render_letter", "failed to render letter pdf", err)
	}

	addr := req.Address
	if addr == (domain.Address{}) {
		addr = s.defaultAddress
	}
	receipt, err := s.sender.SendLetter(ctx, pdfPath, addr)
	if err != nil {
		return nil, pdfPath, NewLetterServiceError("send_letter", "failed to mail letter", err)
	}
	return receipt, pdfPath, nil
}

// GenerateForOrder implements LetterService and task.LetterGenerator.
func (s *letterServiceImpl) GenerateForOrder(
	ctx context.Context,
	order *domain.Order,
	targetDate string,
) (*domain.Letter, error) {
	if order == nil {
		return nil, ErrInvalidRequest
	}
	return s.GenerateAndMail(ctx, LetterRequest{
		FirstName:  order.Customer.FirstName,
		BirthDate:  order.Customer.BirthDate,
		TargetDate: targetDate,
		OrderID:    order.OrderID,
		Address:    order.ShippingAddress,
		Source:     domain.LetterSourceStorefront,
	})
}

// GetLetter implements LetterService.
func (s *letterServiceImpl) GetLetter(ctx context.Context, id uuid.UUID) (*domain.Letter, error) {
	letter, err := s.letters.GetByID(ctx, id)
	if err != nil {
		return nil, NewLetterServiceError("get_letter", "failed to retrieve letter", err)
	}
	return letter, nil
}

// ListLetters implements LetterService.
func (s *letterServiceImpl) ListLetters(ctx context.Context, limit int) ([]*domain.Letter, error) {
	letters, err := s.letters.List(ctx, limit)
	if err != nil {
		return nil, NewLetterServiceError("list_letters", "failed to list letters", err)
	}
	return letters, nil
}

func (s *letterServiceImpl) update(ctx context.Context, letter *domain.Letter) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.storeFor(tx).Update(ctx, letter)
	})
}

func (s *letterServiceImpl) storeFor(tx *sql.Tx) store.LetterStore {
	if tx == nil {
		return s.letters
	}
	return s.letters.WithTx(tx)
}

func parseRequestDates(req LetterRequest) (birth, target time.Time, err error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return time.Time{}, time.Time{}, errors.Join(ErrInvalidRequest, domain.ErrEmptyLetterName)
	}
	birth, err = time.Parse(cardology.DateLayout, req.BirthDate)
	if err != nil {
		return time.Time{}, time.Time{}, &EngineError{
			Message: fmt.Sprintf("invalid date: birth date %q is not YYYY-MM-DD", req.BirthDate),
		}
	}
	target, err = time.Parse(cardology.DateLayout, req.TargetDate)
	if err != nil {
		return time.Time{}, time.Time{}, &EngineError{
			Message: fmt.Sprintf("invalid date: target date %q is not YYYY-MM-DD", req.TargetDate),
		}
	}
	return birth, target, nil
}

func fileName(req LetterRequest) string {
	if req.OrderID != "" {
		return pdf.OrderFileName(req.OrderID)
	}
	return pdf.ManualFileName(req.FirstName, req.TargetDate[:7])
}
