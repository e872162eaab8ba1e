package cardology

import "fmt"

// Deck offsets used for the fixed-relationship satellites.
const (
	longRangeOffset   = 7
	plutoOffset       = 8
	environmentOffset = DeckSize / 2
)

// Satellites are the year-long forecast cards derived from a birth card.
type Satellites struct {
	LongRange    Card `json:"long_range"`
	Pluto        Card `json:"pluto"`
	Result       Card `json:"result"`
	Displacement Card `json:"displacement"`
	Environment  Card `json:"environment"`
}

// DeriveSatellites computes the satellite cards for birth. With i the deck
// index of the birth card:
//
//   - long range is the card 7 places later in the deck
//   - pluto is the card 8 places later
//   - result combines the two: the card at index(long range) + index(pluto)
//   - displacement mirrors the birth card across the deck (51 - i)
//   - environment is half a deck away: same rank, paired suit
//
// All indices wrap modulo 52. The result depends on the birth card alone.
func DeriveSatellites(birth Card) (Satellites, error) {
	i, err := IndexOf(birth)
	if err != nil {
		return Satellites{}, fmt.Errorf("%w: %v", ErrUndefinedSatellite, err)
	}

	longIdx := (i + longRangeOffset) % DeckSize
	plutoIdx := (i + plutoOffset) % DeckSize

	return Satellites{
		LongRange:    deck[longIdx],
		Pluto:        deck[plutoIdx],
		Result:       cardAtWrapped(longIdx + plutoIdx),
		Displacement: deck[DeckSize-1-i],
		Environment:  cardAtWrapped(i + environmentOffset),
	}, nil
}
