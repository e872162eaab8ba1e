package cardology

import (
	"fmt"
	"time"
)

// Cycle geometry: seven periods of 52 days each.
const (
	PeriodLength = 52
	CycleLength  = NumRows * PeriodLength
)

// Period is the active planetary period and fractal card for one day.
type Period struct {
	Card   Card   `json:"card"`
	Planet Planet `json:"planet"`
}

// PlanetForDay returns the planetary period containing dayOffset.
func PlanetForDay(dayOffset int) (Planet, error) {
	if dayOffset < 0 || dayOffset >= CycleLength {
		return "", fmt.Errorf("%w: %d not in 0..%d", ErrInvalidDayOffset, dayOffset, CycleLength-1)
	}
	return rows[dayOffset/PeriodLength], nil
}

// ResolvePeriod returns the planet and fractal card for a day offset within
// the 364-day cycle. The chain must hold at least one full period.
func ResolvePeriod(chain []Card, dayOffset int) (Period, error) {
	planet, err := PlanetForDay(dayOffset)
	if err != nil {
		return Period{}, err
	}
	if len(chain) < PeriodLength {
		return Period{}, fmt.Errorf("%w: chain has %d cards, need %d", ErrInvalidLength, len(chain), PeriodLength)
	}
	return Period{Card: chain[dayOffset%PeriodLength], Planet: planet}, nil
}

// Collision relates the universal card for a calendar date to its position in
// a personal spread.
type Collision struct {
	GlobalCard Card     `json:"global_card"`
	Location   Location `json:"location"`
}

// ResolveCollision finds the global card for date and locates it within the
// subject's spread.
func ResolveCollision(spread Spread, date time.Time) (Collision, error) {
	global, err := GlobalCard(date)
	if err != nil {
		return Collision{}, err
	}
	loc, err := spread.Locate(global)
	if err != nil {
		return Collision{}, fmt.Errorf("resolve collision: %w", err)
	}
	return Collision{GlobalCard: global, Location: loc}, nil
}

// BirthdayIn returns the observed birthday in year at midnight UTC. A
// February 29 birthday is observed on March 1 in common years.
func BirthdayIn(year, month, day int) time.Time {
	// time.Date normalizes Feb 29 of a common year to Mar 1.
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DayOffset returns the number of days from the subject's most recent
// birthday on or before target, modulo the 364-day cycle. The birthday in the
// target year anchors day 0; a target before that birthday counts from the
// previous year's birthday.
func DayOffset(month, day int, target time.Time) (int, error) {
	if err := ValidateMonthDay(month, day); err != nil {
		return 0, err
	}
	t := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	anchor := BirthdayIn(t.Year(), month, day)
	if t.Before(anchor) {
		anchor = BirthdayIn(t.Year()-1, month, day)
	}
	days := int(t.Sub(anchor).Hours() / 24)
	return days % CycleLength, nil
}
