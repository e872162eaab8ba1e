package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/analogalgo/letters/internal/api/shared"
	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/platform/logger"
	"github.com/analogalgo/letters/internal/service"
	"github.com/analogalgo/letters/internal/service/auth"
)

// targetDay is the day of the month manual letters are calculated for.
const targetDay = "-15"

// Authenticator issues admin tokens.
type Authenticator interface {
	Login(ctx context.Context, password string) (*auth.Token, error)
}

// AdminHandler handles the admin login and manual letter endpoints.
type AdminHandler struct {
	authenticator Authenticator
	letters       service.LetterService
	logger        *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authenticator Authenticator, letters service.LetterService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		authenticator: authenticator,
		letters:       letters,
		logger:        logger.With(slog.String("component", "admin_handler")),
	}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	token, err := h.authenticator.Login(r.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid password", err,
				shared.WithElevatedLogLevel())
		default:
			HandleAPIError(w, r, err, "Failed to generate authentication token")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// GenerateTest handles POST /admin/generate-test. It generates and mails a
// letter synchronously so the operator sees the outcome.
func (h *AdminHandler) GenerateTest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateTestRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	letter, err := h.letters.GenerateAndMail(r.Context(), service.LetterRequest{
		FirstName:  req.FirstName,
		BirthDate:  req.BirthDate,
		TargetDate: req.TargetMonth + targetDay,
		Source:     domain.LetterSourceAdmin,
	})
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
			return
		}
		HandleAPIError(w, r, err, "Failed to generate letter")
		return
	}

	log.InfoContext(r.Context(), "manual letter mailed",
		slog.String("letter_id", letter.ID.String()),
		slog.String("carrier_id", letter.CarrierID))

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateTestResponse{
		Message:    "Letter Generated and Mailed",
		LetterID:   letter.ID,
		CarrierID:  letter.CarrierID,
		EngineData: letter.EngineData,
	})
}
