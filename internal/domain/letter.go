package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// LetterStatus represents the processing state of a letter
type LetterStatus string

// Possible letter status values
const (
	LetterStatusPending    LetterStatus = "pending"
	LetterStatusProcessing LetterStatus = "processing"
	LetterStatusMailed     LetterStatus = "mailed"
	LetterStatusFailed     LetterStatus = "failed"
)

// LetterSource records which surface requested a letter.
type LetterSource string

// Letter sources
const (
	LetterSourceAdmin      LetterSource = "admin"
	LetterSourceStorefront LetterSource = "storefront"
)

// Common validation errors for Letter
var (
	ErrEmptyLetterID       = errors.New("letter ID cannot be empty")
	ErrEmptyLetterName     = errors.New("letter first name cannot be empty")
	ErrInvalidLetterDate   = errors.New("letter dates must be YYYY-MM-DD")
	ErrInvalidLetterStatus = errors.New("invalid letter status")
	ErrInvalidLetterSource = errors.New("invalid letter source")
)

const dateLayout = "2006-01-02"

// Letter is one personalized mailing. It records the inputs, the engine
// output it was generated from, and how far it got through rendering and
// mailing.
type Letter struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      string          `json:"order_id,omitempty"`
	Source       LetterSource    `json:"source"`
	FirstName    string          `json:"first_name"`
	BirthDate    string          `json:"birth_date"`
	TargetDate   string          `json:"target_date"`
	Status       LetterStatus    `json:"status"`
	EngineData   json.RawMessage `json:"engine_data,omitempty"`
	PDFPath      string          `json:"pdf_path,omitempty"`
	CarrierID    string          `json:"carrier_id,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewLetter creates a pending Letter with a fresh ID.
// Returns an error if validation fails.
func NewLetter(source LetterSource, firstName, birthDate, targetDate, orderID string) (*Letter, error) {
	now := time.Now().UTC()
	letter := &Letter{
		ID:         uuid.New(),
		OrderID:    orderID,
		Source:     source,
		FirstName:  firstName,
		BirthDate:  birthDate,
		TargetDate: targetDate,
		Status:     LetterStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := letter.Validate(); err != nil {
		return nil, err
	}

	return letter, nil
}

// Validate checks if the Letter has valid data.
func (l *Letter) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLetterID
	}

	if l.FirstName == "" {
		return ErrEmptyLetterName
	}

	if _, err := time.Parse(dateLayout, l.BirthDate); err != nil {
		return ErrInvalidLetterDate
	}
	if _, err := time.Parse(dateLayout, l.TargetDate); err != nil {
		return ErrInvalidLetterDate
	}

	if l.Source != LetterSourceAdmin && l.Source != LetterSourceStorefront {
		return ErrInvalidLetterSource
	}

	if !isValidLetterStatus(l.Status) {
		return ErrInvalidLetterStatus
	}

	return nil
}

// UpdateStatus updates the letter's status and the UpdatedAt timestamp.
func (l *Letter) UpdateStatus(status LetterStatus) error {
	if !isValidLetterStatus(status) {
		return ErrInvalidLetterStatus
	}

	l.Status = status
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkMailed records a successful hand-off to the mail carrier.
func (l *Letter) MarkMailed(pdfPath, carrierID string) {
	l.PDFPath = pdfPath
	l.CarrierID = carrierID
	l.ErrorMessage = ""
	l.Status = LetterStatusMailed
	l.UpdatedAt = time.Now().UTC()
}

// MarkFailed records why the letter could not be produced.
func (l *Letter) MarkFailed(reason string) {
	l.ErrorMessage = reason
	l.Status = LetterStatusFailed
	l.UpdatedAt = time.Now().UTC()
}

func isValidLetterStatus(status LetterStatus) bool {
	switch status {
	case LetterStatusPending, LetterStatusProcessing, LetterStatusMailed, LetterStatusFailed:
		return true
	default:
		return false
	}
}
