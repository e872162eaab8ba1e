package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLetter(t *testing.T) {
	t.Parallel()

	letter, err := NewLetter(LetterSourceAdmin, "Cassidy", "1991-02-17", "2026-03-15", "")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, letter.ID)
	assert.Equal(t, LetterStatusPending, letter.Status)
	assert.False(t, letter.CreatedAt.IsZero())
	assert.Equal(t, letter.CreatedAt, letter.UpdatedAt)
}

func TestLetterValidate(t *testing.T) {
	t.Parallel()

	valid := func() Letter {
		return Letter{
			ID:         uuid.New(),
			Source:     LetterSourceStorefront,
			FirstName:  "Cassidy",
			BirthDate:  "1991-02-17",
			TargetDate: "2026-03-15",
			Status:     LetterStatusPending,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Letter)
		wantErr error
	}{
		{"valid", func(*Letter) {}, nil},
		{"nil id", func(l *Letter) { l.ID = uuid.Nil }, ErrEmptyLetterID},
		{"empty name", func(l *Letter) { l.FirstName = "" }, ErrEmptyLetterName},
		{"bad birth date", func(l *Letter) { l.BirthDate = "17/02/1991" }, ErrInvalidLetterDate},
		{"bad target date", func(l *Letter) { l.TargetDate = "2026-03" }, ErrInvalidLetterDate},
		{"bad source", func(l *Letter) { l.Source = "fax" }, ErrInvalidLetterSource},
		{"bad status", func(l *Letter) { l.Status = "lost" }, ErrInvalidLetterStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := valid()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLetterTransitions(t *testing.T) {
	t.Parallel()

	letter, err := NewLetter(LetterSourceAdmin, "Cassidy", "1991-02-17", "2026-03-15", "")
	require.NoError(t, err)

	require.NoError(t, letter.UpdateStatus(LetterStatusProcessing))
	assert.Equal(t, LetterStatusProcessing, letter.Status)
	assert.ErrorIs(t, letter.UpdateStatus("bogus"), ErrInvalidLetterStatus)

	letter.MarkFailed("carrier down")
	assert.Equal(t, LetterStatusFailed, letter.Status)
	assert.Equal(t, "carrier down", letter.ErrorMessage)

	letter.MarkMailed("/tmp/a.pdf", "ltr_123456")
	assert.Equal(t, LetterStatusMailed, letter.Status)
	assert.Empty(t, letter.ErrorMessage)
	assert.Equal(t, "ltr_123456", letter.CarrierID)
}

func TestOrderValidate(t *testing.T) {
	t.Parallel()

	order := Order{
		OrderID:  "TT-1",
		Customer: Customer{FirstName: "Cassidy", BirthDate: "1991-02-17"},
		Items:    []LineItem{{SKU: "STICKER", Quantity: 3}, {SKU: LetterSKU, Quantity: 2}},
	}
	require.NoError(t, order.Validate())
	assert.Equal(t, 2, order.LetterCount())

	noLetter := order
	noLetter.Items = []LineItem{{SKU: "STICKER", Quantity: 1}}
	assert.ErrorIs(t, noLetter.Validate(), ErrNoLetterItem)

	noID := order
	noID.OrderID = ""
	assert.ErrorIs(t, noID.Validate(), ErrEmptyOrderID)

	noBirthday := order
	noBirthday.Customer.BirthDate = ""
	assert.ErrorIs(t, noBirthday.Validate(), ErrMissingBirthday)
}
