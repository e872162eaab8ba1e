package api

import (
	"encoding/json"

	"github.com/google/uuid"
)

// LoginRequest defines the payload for the admin login endpoint.
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponse is the successful response of admin login.
type LoginResponse struct {
	// Token is the JWT used for admin API authorization
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

// GenerateTestRequest asks for a manual letter from the admin dashboard.
// Dates are checked by the engine so its message reaches the caller.
type GenerateTestRequest struct {
	FirstName   string `json:"first_name"   validate:"required,max=100"`
	BirthDate   string `json:"birth_date"   validate:"required"`  // YYYY-MM-DD
	TargetMonth string `json:"target_month" validate:"required"` // YYYY-MM
}

// GenerateTestResponse reports a mailed manual letter.
type GenerateTestResponse struct {
	Message    string          `json:"message"`
	LetterID   uuid.UUID       `json:"letter_id"`
	CarrierID  string          `json:"carrier_id"`
	EngineData json.RawMessage `json:"engine_data"`
}

// WebhookRequest is the storefront's order notification.
type WebhookRequest struct {
	OrderID string `json:"order_id"`
}

// WebhookResponse acknowledges an accepted order.
type WebhookResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
}

// LetterDataRequest is the body of the letter-data engine endpoint.
type LetterDataRequest struct {
	Name       string `json:"name"`
	BirthYear  int    `json:"birth_year"  validate:"required"`
	BirthMonth int    `json:"birth_month" validate:"required"`
	BirthDay   int    `json:"birth_day"   validate:"required"`
	TargetDate string `json:"target_date" validate:"required"`
}
