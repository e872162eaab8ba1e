package cardology

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Stage names a step of the letter pipeline. Errors from Assemble are
// prefixed with the stage that failed.
type Stage string

// Pipeline stages, in execution order.
const (
	StageParseInput       Stage = "parse input"
	StageResolveBirthCard Stage = "resolve birth card"
	StageComputeYear      Stage = "compute spread year"
	StageExtractChain     Stage = "extract chain"
	StageResolvePeriod    Stage = "resolve period"
	StageDeriveSatellites Stage = "derive satellites"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Request carries the inputs of a letter calculation. Name is carried for
// callers and is not validated.
type Request struct {
	Name       string
	BirthYear  int
	BirthMonth int
	BirthDay   int
	TargetDate string // YYYY-MM-DD
}

// LetterData is the assembled engine output consumed by the letter and
// planner templates. The JSON field names are a stable contract.
type LetterData struct {
	BirthCard  Card       `json:"birth_card"`
	Period     Period     `json:"period"`
	YearLong   Satellites `json:"year_long"`
	SpreadYear int        `json:"spread_year"`
	DayOffset  int        `json:"day_offset"`
}

// LetterResult is either a LetterData or an error message. Marshalled to
// JSON it yields the LetterData fields on success and only {"error": ...} on
// failure.
type LetterResult struct {
	*LetterData
	Error string `json:"error,omitempty"`
}

// OK reports whether the result holds letter data.
func (r LetterResult) OK() bool {
	return r.Error == "" && r.LetterData != nil
}

// Assemble runs the full letter pipeline. The first failing stage stops the
// pipeline; no partial data is returned.
func Assemble(req Request) (LetterData, error) {
	fail := func(stage Stage, err error) (LetterData, error) {
		return LetterData{}, &StageError{Stage: stage, Err: err}
	}

	target, err := time.Parse(DateLayout, req.TargetDate)
	if err != nil {
		return fail(StageParseInput, fmt.Errorf("%w: target date %q is not YYYY-MM-DD", ErrInvalidDate, req.TargetDate))
	}

	birth, _, err := GetBirthCard(req.BirthMonth, req.BirthDay)
	if err != nil {
		return fail(StageResolveBirthCard, err)
	}

	spreadYear := SpreadYearFor(req.BirthYear, target.Year())
	offset, err := DayOffset(req.BirthMonth, req.BirthDay, target)
	if err != nil {
		return fail(StageComputeYear, err)
	}

	spread := GenerateYearlySpreadData(spreadYear)

	chain, err := ExtractChain(spread, birth, ChainLength)
	if err != nil {
		return fail(StageExtractChain, err)
	}

	period, err := ResolvePeriod(chain, offset)
	if err != nil {
		return fail(StageResolvePeriod, err)
	}

	sats, err := DeriveSatellites(birth)
	if err != nil {
		return fail(StageDeriveSatellites, err)
	}

	return LetterData{
		BirthCard:  birth,
		Period:     period,
		YearLong:   sats,
		SpreadYear: spreadYear,
		DayOffset:  offset,
	}, nil
}

// CalculateLetterData is the engine entry point for external callers. It
// never panics: every failure, including an unexpected one, is reported in
// the Error field.
func CalculateLetterData(name string, birthYear, birthMonth, birthDay int, targetDate string) (result LetterResult) {
	defer func() {
		if r := recover(); r != nil {
			result = LetterResult{Error: fmt.Sprintf("internal engine failure: %v", r)}
		}
	}()

	data, err := Assemble(Request{
		Name:       name,
		BirthYear:  birthYear,
		BirthMonth: birthMonth,
		BirthDay:   birthDay,
		TargetDate: targetDate,
	})
	if err != nil {
		return LetterResult{Error: err.Error()}
	}
	return LetterResult{LetterData: &data}
}

// IsInputError reports whether err was caused by bad caller input rather than
// an engine fault.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidCard) ||
		errors.Is(err, ErrInvalidLength) || errors.Is(err, ErrInvalidDayOffset)
}
