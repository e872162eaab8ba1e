package cardology

import (
	"encoding/json"
	"fmt"
)

// Planet names one of the seven planetary periods. Each period is also a row
// of a Spread.
type Planet string

// Planetary periods in cycle order.
const (
	Mercury Planet = "Mercury"
	Venus   Planet = "Venus"
	Mars    Planet = "Mars"
	Jupiter Planet = "Jupiter"
	Saturn  Planet = "Saturn"
	Uranus  Planet = "Uranus"
	Neptune Planet = "Neptune"
)

// Spread geometry.
const (
	NumRows       = 7
	RowLength     = 7
	CrownSize     = DeckSize - NumRows*RowLength
	MinSpreadYear = 1
	MaxSpreadYear = 90
)

var rows = [NumRows]Planet{Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune}

// Rows returns the seven planetary periods in their fixed order. The result
// is a copy; the ordering itself can never change.
func Rows() [NumRows]Planet {
	return rows
}

// RowIndex returns the position of p in Rows, or -1 if p is not a planet.
func RowIndex(p Planet) int {
	for i, r := range rows {
		if r == p {
			return i
		}
	}
	return -1
}

// Location is where a card sits inside a Spread: either a column of a
// planetary row or a position in the crown.
type Location struct {
	Crown  bool   `json:"crown"`
	Planet Planet `json:"planet,omitempty"`
	Index  int    `json:"index"`
}

func (l Location) String() string {
	if l.Crown {
		return fmt.Sprintf("crown[%d]", l.Index)
	}
	return fmt.Sprintf("%s[%d]", l.Planet, l.Index)
}

// Spread is the card layout for one spread year: seven rows of seven cards in
// Rows order followed by a three-card crown. A Spread is a value; copies are
// independent and the zero Spread contains no cards.
type Spread struct {
	year  int
	cards [DeckSize]Card // reading order: rows top to bottom, then crown
	pos   [DeckSize]int  // deck index -> reading position + 1; 0 means absent
}

// Year returns the clamped spread year the layout was built for. Spreads made
// with NewSpread report the year they were given.
func (s Spread) Year() int { return s.year }

// Row returns a copy of the cards in the row for p, left to right. It returns
// nil if p is not a planet.
func (s Spread) Row(p Planet) []Card {
	i := RowIndex(p)
	if i < 0 {
		return nil
	}
	out := make([]Card, RowLength)
	copy(out, s.cards[i*RowLength:(i+1)*RowLength])
	return out
}

// Grid returns every row keyed by planet.
func (s Spread) Grid() map[Planet][]Card {
	grid := make(map[Planet][]Card, NumRows)
	for _, p := range rows {
		grid[p] = s.Row(p)
	}
	return grid
}

// Crown returns a copy of the crown cards.
func (s Spread) Crown() []Card {
	out := make([]Card, CrownSize)
	copy(out, s.cards[NumRows*RowLength:])
	return out
}

// Cards returns all 52 cards in reading order.
func (s Spread) Cards() []Card {
	out := make([]Card, DeckSize)
	copy(out, s.cards[:])
	return out
}

// Locate reports where c sits in the spread.
func (s Spread) Locate(c Card) (Location, error) {
	p, err := s.position(c)
	if err != nil {
		return Location{}, err
	}
	if p >= NumRows*RowLength {
		return Location{Crown: true, Index: p - NumRows*RowLength}, nil
	}
	return Location{Planet: rows[p/RowLength], Index: p % RowLength}, nil
}

// position returns the reading-order position of c.
func (s Spread) position(c Card) (int, error) {
	idx, err := IndexOf(c)
	if err != nil {
		return 0, err
	}
	if s.pos[idx] == 0 {
		return 0, fmt.Errorf("%w: %s", ErrAnchorNotFound, c)
	}
	return s.pos[idx] - 1, nil
}

type spreadJSON struct {
	SpreadYear int               `json:"spread_year"`
	Rows       map[Planet][]Card `json:"rows"`
	Crown      []Card            `json:"crown"`
}

// MarshalJSON encodes the spread as {spread_year, rows, crown}.
func (s Spread) MarshalJSON() ([]byte, error) {
	return json.Marshal(spreadJSON{SpreadYear: s.year, Rows: s.Grid(), Crown: s.Crown()})
}

// UnmarshalJSON decodes and validates the form produced by MarshalJSON.
func (s *Spread) UnmarshalJSON(data []byte) error {
	var raw spreadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	built, err := NewSpread(raw.SpreadYear, raw.Rows, raw.Crown)
	if err != nil {
		return err
	}
	*s = built
	return nil
}

// NewSpread assembles a Spread from explicit rows and crown, as produced by an
// exporter or decoded from storage. Every card must appear exactly once.
func NewSpread(year int, grid map[Planet][]Card, crown []Card) (Spread, error) {
	var seq []Card
	for _, p := range rows {
		row := grid[p]
		if len(row) != RowLength {
			return Spread{}, fmt.Errorf("%w: row %s has %d cards, want %d", ErrMalformedSpread, p, len(row), RowLength)
		}
		seq = append(seq, row...)
	}
	if len(grid) != NumRows {
		return Spread{}, fmt.Errorf("%w: %d rows, want %d", ErrMalformedSpread, len(grid), NumRows)
	}
	if len(crown) != CrownSize {
		return Spread{}, fmt.Errorf("%w: crown has %d cards, want %d", ErrMalformedSpread, len(crown), CrownSize)
	}
	seq = append(seq, crown...)
	return fromSequence(year, seq)
}

func fromSequence(year int, seq []Card) (Spread, error) {
	s := Spread{year: year}
	for i, c := range seq {
		idx, err := IndexOf(c)
		if err != nil {
			return Spread{}, fmt.Errorf("%w: %v", ErrMalformedSpread, err)
		}
		if s.pos[idx] != 0 {
			return Spread{}, fmt.Errorf("%w: %s appears twice", ErrMalformedSpread, c)
		}
		s.cards[i] = c
		s.pos[idx] = i + 1
	}
	return s, nil
}

// ClampSpreadYear bounds a spread year to the 1..90 lifespan window.
func ClampSpreadYear(year int) int {
	if year < MinSpreadYear {
		return MinSpreadYear
	}
	if year > MaxSpreadYear {
		return MaxSpreadYear
	}
	return year
}

// SpreadYearFor returns the clamped spread year in effect for someone born in
// birthYear during targetYear: one plus their age in whole calendar years.
func SpreadYearFor(birthYear, targetYear int) int {
	return ClampSpreadYear(targetYear - birthYear + 1)
}

// quadrate applies one quadration shuffle. The cards are dealt round-robin
// into four piles, the piles are stacked in deal order, and the top card is
// cut to the bottom. The cut keeps year 2 from sharing its first card with
// year 1.
func quadrate(in [DeckSize]Card) [DeckSize]Card {
	var stacked [DeckSize]Card
	n := 0
	for pile := 0; pile < 4; pile++ {
		for i := pile; i < DeckSize; i += 4 {
			stacked[n] = in[i]
			n++
		}
	}
	var out [DeckSize]Card
	copy(out[:], stacked[1:])
	out[DeckSize-1] = stacked[0]
	return out
}

// spreads holds the layout for every spread year, indexed by year-1. Year 1
// is the natural deck order and each following year is one quadration of the
// year before it.
var spreads = func() [MaxSpreadYear]Spread {
	var out [MaxSpreadYear]Spread
	seq := deck
	for y := MinSpreadYear; y <= MaxSpreadYear; y++ {
		s, err := fromSequence(y, seq[:])
		if err != nil {
			panic(err) // quadration is a permutation
		}
		out[y-1] = s
		seq = quadrate(seq)
	}
	return out
}()

// GenerateYearlySpreadData returns the Spread for spreadYear after clamping
// it to 1..90. The same year always returns an identical Spread.
func GenerateYearlySpreadData(spreadYear int) Spread {
	return spreads[ClampSpreadYear(spreadYear)-1]
}
