// Package mail hands rendered letters to the print-and-mail carrier.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/platform/logger"
	"github.com/analogalgo/letters/internal/platform/metrics"
)

var (
	// ErrPDFNotFound is returned when the letter file does not exist.
	ErrPDFNotFound = errors.New("pdf not found")

	// ErrInvalidAddress is returned when the destination is incomplete.
	ErrInvalidAddress = errors.New("invalid mailing address")

	// ErrTransient marks a carrier failure worth retrying.
	ErrTransient = errors.New("transient carrier failure")
)

const deliveryDays = 5

// Receipt is the carrier's acknowledgement of a submitted letter.
type Receipt struct {
	ID                   string `json:"id"`
	Status               string `json:"status"`
	ExpectedDeliveryDate string `json:"expected_delivery_date"`
}

// Sender submits a letter PDF for delivery.
type Sender interface {
	SendLetter(ctx context.Context, pdfPath string, to domain.Address) (*Receipt, error)
}

// SubmitFunc performs one submission attempt.
type SubmitFunc func(ctx context.Context, pdfPath string, to domain.Address) (*Receipt, error)

// Carrier submits letters, retrying transient failures with exponential
// backoff.
type Carrier struct {
	logger     *slog.Logger
	metrics    *metrics.Metrics
	maxRetries uint64
	baseDelay  time.Duration
	submit     SubmitFunc
	now        func() time.Time
}

var _ Sender = (*Carrier)(nil)

// Option configures a Carrier.
type Option func(*Carrier)

// WithSubmitFunc replaces the submission attempt. Tests use it to simulate
// carrier failures.
func WithSubmitFunc(fn SubmitFunc) Option {
	return func(c *Carrier) { c.submit = fn }
}

// WithBaseDelay sets the first backoff delay.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Carrier) { c.baseDelay = d }
}

// WithMetrics records attempts on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Carrier) { c.metrics = m }
}

// NewCarrier creates a carrier client that retries up to maxRetries times.
func NewCarrier(logger *slog.Logger, maxRetries int, opts ...Option) *Carrier {
	if logger == nil {
		logger = slog.Default()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	c := &Carrier{
		logger:     logger.With(slog.String("component", "mail_carrier")),
		maxRetries: uint64(maxRetries),
		baseDelay:  time.Second,
		now:        time.Now,
	}
	c.submit = c.sampleSubmit
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendLetter validates the request and submits it. Only failures wrapping
// ErrTransient are retried.
func (c *Carrier) SendLetter(ctx context.Context, pdfPath string, to domain.Address) (*Receipt, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if to.Name == "" || to.AddressLine1 == "" || to.ZipCode == "" {
		return nil, ErrInvalidAddress
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPDFNotFound, pdfPath)
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.baseDelay))

	var receipt *Receipt
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		r, err := c.submit(ctx, pdfPath, to)
		if err == nil {
			c.metrics.IncrementMailAttempt(metrics.OutcomeSuccess)
			receipt = r
			return nil
		}
		if errors.Is(err, ErrTransient) {
			c.metrics.IncrementMailAttempt(metrics.OutcomeRetry)
			log.WarnContext(ctx, "carrier submission failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		c.metrics.IncrementMailAttempt(metrics.OutcomeFailure)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send letter after %d attempt(s): %w", attempt, err)
	}

	log.InfoContext(ctx, "letter submitted to carrier",
		slog.String("carrier_id", receipt.ID),
		slog.String("recipient", to.Name),
		slog.Int("attempts", attempt))
	return receipt, nil
}

// sampleSubmit acknowledges every letter without contacting a carrier.
func (c *Carrier) sampleSubmit(ctx context.Context, pdfPath string, to domain.Address) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Receipt{
		ID:                   fmt.Sprintf("ltr_%06d", 100000+rand.IntN(900000)),
		Status:               "processed",
		ExpectedDeliveryDate: c.now().AddDate(0, 0, deliveryDays).Format("2006-01-02"),
	}, nil
}
