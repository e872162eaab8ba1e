package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/integrations/mail"
	"github.com/analogalgo/letters/internal/narrative"
	"github.com/analogalgo/letters/internal/store"
)

var errBoom = errors.New("boom")

// calculatorFunc adapts a function to LetterDataCalculator.
type calculatorFunc func(ctx context.Context, req cardology.Request) cardology.LetterResult

func (f calculatorFunc) Calculate(ctx context.Context, req cardology.Request) cardology.LetterResult {
	return f(ctx, req)
}

// engineCalculator runs the real engine without a cache.
var engineCalculator = calculatorFunc(func(_ context.Context, req cardology.Request) cardology.LetterResult {
	return cardology.CalculateLetterData(req.Name, req.BirthYear, req.BirthMonth, req.BirthDay, req.TargetDate)
})

// mockSender is a mail.Sender with a replaceable SendLetter.
type mockSender struct {
	SendLetterFn func(ctx context.Context, pdfPath string, to domain.Address) (*mail.Receipt, error)
	calls        []domain.Address
}

func (m *mockSender) SendLetter(ctx context.Context, pdfPath string, to domain.Address) (*mail.Receipt, error) {
	m.calls = append(m.calls, to)
	if m.SendLetterFn != nil {
		return m.SendLetterFn(ctx, pdfPath, to)
	}
	return &mail.Receipt{ID: "ltr_123456", Status: "processed", ExpectedDeliveryDate: "2026-03-20"}, nil
}

// mockRenderer is a LetterRenderer with a replaceable WriteFile.
type mockRenderer struct {
	WriteFileFn func(name string, letter narrative.Letter) (string, error)
}

func (m *mockRenderer) WriteFile(name string, letter narrative.Letter) (string, error) {
	return m.WriteFileFn(name, letter)
}

// failingLetterStore wraps a store and fails selected operations.
type failingLetterStore struct {
	store.LetterStore
	createErr error
	updateErr error
}

func (f *failingLetterStore) Create(ctx context.Context, letter *domain.Letter) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.LetterStore.Create(ctx, letter)
}

func (f *failingLetterStore) Update(ctx context.Context, letter *domain.Letter) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.LetterStore.Update(ctx, letter)
}

func newComposer(t *testing.T) *narrative.Composer {
	t.Helper()
	c, err := narrative.NewComposer()
	require.NoError(t, err)
	return c
}

func cassidyRequest() LetterRequest {
	return LetterRequest{
		FirstName:  "Cassidy",
		BirthDate:  "1991-02-17",
		TargetDate: "2026-03-15",
		Source:     domain.LetterSourceAdmin,
	}
}

var sampleAddress = domain.Address{
	Name:         "Cassidy Williams",
	AddressLine1: "123 Mystic Lane",
	City:         "Portland",
	State:        "OR",
	ZipCode:      "97204",
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		OrderID: "TT-100",
		Customer: domain.Customer{
			FirstName: "Cassidy",
			BirthDate: "1991-02-17",
		},
		ShippingAddress: sampleAddress,
		Items:           []domain.LineItem{{SKU: domain.LetterSKU, Quantity: 1}},
	}
}

