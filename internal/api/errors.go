package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/analogalgo/letters/internal/api/shared"
	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/events"
	"github.com/analogalgo/letters/internal/service"
	"github.com/analogalgo/letters/internal/service/auth"
	"github.com/analogalgo/letters/internal/store"
	"github.com/analogalgo/letters/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidSignature):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrLoginDisabled):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrLetterNotFound),
		errors.Is(err, store.ErrLetterNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrEngine),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, events.ErrEmptyOrderID),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		cardology.IsInputError(err):
		return http.StatusBadRequest

	// Back-pressure from the task queue
	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
// Engine input errors are safe to show: they only echo the caller's dates
// and cards.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var engineErr *service.EngineError
	switch {
	case errors.As(err, &engineErr):
		return engineErr.Message

	case cardology.IsInputError(err):
		return err.Error()

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrLoginDisabled):
		return "Admin login is disabled"

	case errors.Is(err, auth.ErrInvalidSignature):
		return "Invalid signature"

	case errors.Is(err, service.ErrLetterNotFound),
		errors.Is(err, store.ErrLetterNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Letter not found"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid letter request"

	case errors.Is(err, events.ErrEmptyOrderID):
		return "order_id is required"

	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrQueueClosed):
		return "Service is busy, try again later"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err and logs
// the redacted detail.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", toSnake(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	if errors.Is(err, shared.ErrEmptyBody) {
		return "Request body is required"
	}
	return "Invalid request format"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "datetime":
		return "invalid date format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}

func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
