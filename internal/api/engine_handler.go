package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/analogalgo/letters/internal/api/shared"
	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/service"
)

// defaultCalendarOwner names calendars requested without a name.
const defaultCalendarOwner = "Friend"

// EngineHandler exposes the card engine read-only.
type EngineHandler struct {
	engine service.EngineService
	now    func() time.Time
}

// NewEngineHandler creates a new EngineHandler.
func NewEngineHandler(engine service.EngineService) *EngineHandler {
	return &EngineHandler{engine: engine, now: time.Now}
}

// BirthCard handles GET /api/engine/birth-card?month=&day=.
func (h *EngineHandler) BirthCard(w http.ResponseWriter, r *http.Request) {
	month, err := queryInt(r, "month", 0)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	day, err := queryInt(r, "day", 0)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	result, err := h.engine.BirthCard(month, day)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Spread handles GET /api/engine/spreads/{year}. Out-of-range years are
// clamped by the engine.
func (h *EngineHandler) Spread(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.engine.Spread(year))
}

// Chain handles GET /api/engine/chain?year=&anchor=&length=.
func (h *EngineHandler) Chain(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year", 1)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	length, err := queryInt(r, "length", 0)
	if err != nil || length < 0 {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "length must be a non-negative integer", err)
		return
	}
	anchor := r.URL.Query().Get("anchor")
	if anchor == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "anchor is required")
		return
	}

	result, err := h.engine.Chain(year, anchor, length)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// LetterData handles POST /api/engine/letter-data. The body mirrors the
// engine request and the response is the engine result itself, so a rejected
// request yields 400 with {"error": ...}.
func (h *EngineHandler) LetterData(w http.ResponseWriter, r *http.Request) {
	var req LetterDataRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result := h.engine.LetterData(r.Context(), cardology.Request{
		Name:       req.Name,
		BirthYear:  req.BirthYear,
		BirthMonth: req.BirthMonth,
		BirthDay:   req.BirthDay,
		TargetDate: req.TargetDate,
	})
	status := http.StatusOK
	if !result.OK() {
		status = http.StatusBadRequest
	}
	shared.RespondWithJSON(w, r, status, result)
}

// Calendar handles GET /api/engine/calendar?birth_date=&year=&name=.
func (h *EngineHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year", h.now().Year())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	birthDate := r.URL.Query().Get("birth_date")
	if birthDate == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "birth_date is required")
		return
	}
	owner := r.URL.Query().Get("name")
	if owner == "" {
		owner = defaultCalendarOwner
	}

	planner, err := h.engine.Calendar(owner, birthDate, year)
	if err != nil {
		if cardology.IsInputError(err) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, fmt.Sprintf("invalid calendar request: %v", err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, planner)
}
