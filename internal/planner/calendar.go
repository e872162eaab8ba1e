// Package planner builds the 364-day personal calendar and renders it as
// printable HTML planner pages.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/narrative"
)

// ErrEmptyName is returned when a planner is requested without an owner.
var ErrEmptyName = errors.New("owner name is required")

// Day is one calendar entry.
type Day struct {
	Date            string           `json:"date"`
	DayOfYear       int              `json:"day_of_year"`
	Period          cardology.Planet `json:"period"`
	FractalCard     cardology.Card   `json:"fractal_card"`
	GlobalCard      cardology.Card   `json:"global_card"`
	CollisionPlanet string           `json:"collision_planet"`
}

// Planner is a subject's calendar for one target year.
type Planner struct {
	Owner      string         `json:"owner"`
	BirthDate  string         `json:"birth_date"`
	Year       int            `json:"year"`
	SpreadYear int            `json:"spread_year"`
	BirthCard  cardology.Card `json:"birth_card"`
	Days       []Day          `json:"days"`
}

// Build computes the calendar for owner starting on their birthday in
// targetYear and running for one full 364-day cycle.
func Build(owner string, birth time.Time, targetYear int) (Planner, error) {
	if strings.TrimSpace(owner) == "" {
		return Planner{}, ErrEmptyName
	}

	month, day := int(birth.Month()), birth.Day()
	birthCard, _, err := cardology.GetBirthCard(month, day)
	if err != nil {
		return Planner{}, err
	}

	spreadYear := cardology.SpreadYearFor(birth.Year(), targetYear)
	spread := cardology.GenerateYearlySpreadData(spreadYear)
	chain, err := cardology.ExtractChain(spread, birthCard, cardology.ChainLength)
	if err != nil {
		return Planner{}, fmt.Errorf("planner chain: %w", err)
	}

	start := cardology.BirthdayIn(targetYear, month, day)
	days := make([]Day, cardology.CycleLength)
	for offset := range days {
		date := start.AddDate(0, 0, offset)

		period, err := cardology.ResolvePeriod(chain, offset)
		if err != nil {
			return Planner{}, err
		}
		collision, err := cardology.ResolveCollision(spread, date)
		if err != nil {
			return Planner{}, err
		}

		days[offset] = Day{
			Date:            date.Format(cardology.DateLayout),
			DayOfYear:       offset + 1,
			Period:          period.Planet,
			FractalCard:     period.Card,
			GlobalCard:      collision.GlobalCard,
			CollisionPlanet: narrative.CollisionLabel(collision.Location),
		}
	}

	return Planner{
		Owner:      owner,
		BirthDate:  birth.Format(cardology.DateLayout),
		Year:       targetYear,
		SpreadYear: spreadYear,
		BirthCard:  birthCard,
		Days:       days,
	}, nil
}

// ParseBirthDate parses a YYYY-MM-DD birth date.
func ParseBirthDate(s string) (time.Time, error) {
	t, err := time.Parse(cardology.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birth date %q is not YYYY-MM-DD", cardology.ErrInvalidDate, s)
	}
	return t, nil
}
