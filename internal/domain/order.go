package domain

import "errors"

// LetterSKU is the storefront product that entitles a customer to a letter.
const LetterSKU = "ANALOG-LETTER-SUB"

var (
	ErrEmptyOrderID    = errors.New("order ID cannot be empty")
	ErrNoLetterItem    = errors.New("order contains no letter subscription")
	ErrMissingBirthday = errors.New("order customer has no birth date")
)

// Address is a postal address for a mailed letter.
type Address struct {
	Name         string `json:"name"                    mapstructure:"name"          validate:"required"`
	AddressLine1 string `json:"address_line1"           mapstructure:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2,omitempty" mapstructure:"address_line2"`
	City         string `json:"city"                    mapstructure:"city"          validate:"required"`
	State        string `json:"state"                   mapstructure:"state"         validate:"required"`
	ZipCode      string `json:"zip_code"                mapstructure:"zip_code"      validate:"required"`
	Country      string `json:"country,omitempty"       mapstructure:"country"`
}

// Customer is the purchaser of a storefront order.
type Customer struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD, collected at checkout
}

// LineItem is one product line of an order.
type LineItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Order is a storefront purchase.
type Order struct {
	OrderID         string     `json:"order_id"`
	Customer        Customer   `json:"customer"`
	ShippingAddress Address    `json:"shipping_address"`
	Items           []LineItem `json:"items"`
}

// Validate checks that the order can be fulfilled with a letter.
func (o *Order) Validate() error {
	if o.OrderID == "" {
		return ErrEmptyOrderID
	}
	if o.Customer.BirthDate == "" {
		return ErrMissingBirthday
	}
	if o.LetterCount() == 0 {
		return ErrNoLetterItem
	}
	return nil
}

// LetterCount returns how many letters the order pays for.
func (o *Order) LetterCount() int {
	n := 0
	for _, item := range o.Items {
		if item.SKU == LetterSKU {
			n += item.Quantity
		}
	}
	return n
}
