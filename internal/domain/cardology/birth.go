package cardology

import (
	"fmt"
	"time"
)

// SpreadValue is the day-of-year of a birthday measured in a leap reference
// year, so it runs from 1 (January 1) to 366 (December 31) and February 29 is
// always day 60. It depends only on month and day, never on the birth year.
type SpreadValue int

// daysInMonth holds the maximum day for each month in a leap year. Birthdays
// recur every year, so February 29 is accepted.
var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ValidateMonthDay returns ErrInvalidDate unless (month, day) names a day that
// exists in at least one calendar year.
func ValidateMonthDay(month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range 1..12", ErrInvalidDate, month)
	}
	if day < 1 || day > daysInMonth[month] {
		return fmt.Errorf("%w: %s has no day %d", ErrInvalidDate, time.Month(month), day)
	}
	return nil
}

// GetBirthCard resolves the birth card and spread value for a birthday.
//
// The birth card follows the solar value rule: solar = 55 - (2*month + day).
// Solar values 1..52 map onto the deck in order. December 31 yields a solar
// value of 0, traditionally the joker; with no joker in the cycle it wraps to
// the King of Spades.
func GetBirthCard(month, day int) (Card, SpreadValue, error) {
	if err := ValidateMonthDay(month, day); err != nil {
		return Card{}, 0, err
	}

	solar := 55 - (2*month + day)
	card := cardAtWrapped(solar - 1)

	sv := day
	for m := 1; m < month; m++ {
		sv += daysInMonth[m]
	}
	return card, SpreadValue(sv), nil
}

// GlobalCard returns the card ruling a calendar date. It is the birth card of
// anyone born on that month and day.
func GlobalCard(date time.Time) (Card, error) {
	card, _, err := GetBirthCard(int(date.Month()), date.Day())
	return card, err
}
