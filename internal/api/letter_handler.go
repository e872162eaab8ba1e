package api

import (
	"net/http"

	"github.com/analogalgo/letters/internal/api/shared"
	"github.com/analogalgo/letters/internal/service"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// LetterHandler serves the letter history.
type LetterHandler struct {
	letters service.LetterService
}

// NewLetterHandler creates a new LetterHandler.
func NewLetterHandler(letters service.LetterService) *LetterHandler {
	return &LetterHandler{letters: letters}
}

// ListLetters handles GET /api/letters.
func (h *LetterHandler) ListLetters(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit < 1 || limit > maxListLimit {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "limit must be between 1 and 500", err)
		return
	}

	letters, err := h.letters.ListLetters(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list letters")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, letters)
}

// GetLetter handles GET /api/letters/{id}.
func (h *LetterHandler) GetLetter(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	letter, err := h.letters.GetLetter(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve letter")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, letter)
}
