// Package storefront fetches orders from the shop that sells letter
// subscriptions. The client is a stand-in that returns a fixed sample order
// until the shop API credentials are provisioned.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/platform/logger"
)

// ErrOrderNotFound is returned when the storefront has no such order.
var ErrOrderNotFound = errors.New("order not found")

// OrderFetcher retrieves storefront orders.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// Client is the sample storefront client.
type Client struct {
	logger *slog.Logger
}

var _ OrderFetcher = (*Client)(nil)

// NewClient creates a storefront client.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{logger: logger.With(slog.String("component", "storefront"))}
}

// FetchOrder returns the order with the given id. Every id resolves to the
// sample subscription order for Cassidy.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: %w", ErrOrderNotFound, domain.ErrEmptyOrderID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logger.FromContextOrDefault(ctx, c.logger)
	log.InfoContext(ctx, "fetching storefront order", slog.String("order_id", orderID))

	return &domain.Order{
		OrderID: orderID,
		Customer: domain.Customer{
			FirstName: "Cassidy",
			Email:     "cassidy@example.com",
			BirthDate: "1991-02-17",
		},
		ShippingAddress: domain.Address{
			Name:         "Cassidy Williams",
			AddressLine1: "123 Mystic Lane",
			City:         "Portland",
			State:        "OR",
			ZipCode:      "97204",
			Country:      "US",
		},
		Items: []domain.LineItem{
			{SKU: domain.LetterSKU, Quantity: 1},
		},
	}, nil
}
