package cardology

import "errors"

// Engine errors. Callers should compare with errors.Is since every error
// returned by this package wraps one of these with call-specific context.
var (
	// ErrInvalidDate is returned when a month/day pair or a target date string
	// does not describe a real calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidIndex is returned when a deck index is outside 0..51 or a card
	// is not one of the 52 deck cards.
	ErrInvalidIndex = errors.New("invalid deck index")

	// ErrInvalidCard is returned when a card string cannot be parsed.
	ErrInvalidCard = errors.New("invalid card")

	// ErrAnchorNotFound is returned when a chain anchor is not present in the
	// spread being walked. A well-formed Spread always locates every card.
	ErrAnchorNotFound = errors.New("anchor card not found in spread")

	// ErrUndefinedSatellite is returned when satellites are requested for a
	// card that is not part of the deck.
	ErrUndefinedSatellite = errors.New("undefined satellite")

	// ErrInvalidDayOffset is returned when a day offset falls outside the
	// 364-day cycle.
	ErrInvalidDayOffset = errors.New("invalid day offset")

	// ErrInvalidLength is returned when a negative chain length is requested,
	// or when a chain is too short to resolve a period card.
	ErrInvalidLength = errors.New("invalid chain length")

	// ErrMalformedSpread is returned by NewSpread when the supplied rows and
	// crown do not partition the deck.
	ErrMalformedSpread = errors.New("malformed spread")
)
