package cardology

import (
	"fmt"
	"strings"
)

// DeckSize is the number of cards in the cycle. There is no joker.
const DeckSize = 52

// Suit identifies one of the four suits. The numeric order is the deck order.
type Suit uint8

// Suits in deck order.
const (
	Hearts Suit = iota
	Clubs
	Diamonds
	Spades
)

var suitGlyphs = [...]string{Hearts: "♥", Clubs: "♣", Diamonds: "♦", Spades: "♠"}
var suitLetters = [...]string{Hearts: "H", Clubs: "C", Diamonds: "D", Spades: "S"}
var suitNames = [...]string{Hearts: "Hearts", Clubs: "Clubs", Diamonds: "Diamonds", Spades: "Spades"}

// Glyph returns the suit symbol, e.g. "♥".
func (s Suit) Glyph() string {
	if s > Spades {
		return "?"
	}
	return suitGlyphs[s]
}

// String returns the suit name, e.g. "Hearts".
func (s Suit) String() string {
	if s > Spades {
		return fmt.Sprintf("Suit(%d)", uint8(s))
	}
	return suitNames[s]
}

// Rank is a card rank from Ace (1) to King (13). Zero is not a valid rank,
// which makes the zero Card invalid.
type Rank uint8

// Named ranks.
const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

var rankSymbols = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
var rankNames = [...]string{
	"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Jack", "Queen", "King",
}

// Card is an immutable (rank, suit) value. Cards compare with ==.
type Card struct {
	Rank Rank
	Suit Suit
}

// Valid reports whether c is one of the 52 deck cards.
func (c Card) Valid() bool {
	return c.Rank >= Ace && c.Rank <= King && c.Suit <= Spades
}

// String returns the short form used throughout the system, e.g. "A♥" or "10♠".
func (c Card) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return rankSymbols[c.Rank] + suitGlyphs[c.Suit]
}

// Name returns the long form, e.g. "Queen of Spades".
func (c Card) Name() string {
	if !c.Valid() {
		return "Unknown Card"
	}
	return rankNames[c.Rank] + " of " + suitNames[c.Suit]
}

// IsBlack reports whether the card belongs to a black suit.
func (c Card) IsBlack() bool {
	return c.Suit == Clubs || c.Suit == Spades
}

// MarshalText encodes the card in its short form so that JSON and YAML carry
// cards as plain strings.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: rank %d suit %d", ErrInvalidCard, c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes any form accepted by ParseCard.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a card in glyph form ("10♠", "A♥") or letter form ("10S",
// "ah", "QD"). Surrounding whitespace is ignored.
func ParseCard(s string) (Card, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Card{}, fmt.Errorf("%w: empty string", ErrInvalidCard)
	}

	var suit Suit
	var rankPart string
	found := false
	for i := Hearts; i <= Spades; i++ {
		if strings.HasSuffix(raw, suitGlyphs[i]) {
			suit, rankPart, found = i, strings.TrimSuffix(raw, suitGlyphs[i]), true
			break
		}
		if strings.HasSuffix(strings.ToUpper(raw), suitLetters[i]) {
			suit, rankPart, found = i, raw[:len(raw)-1], true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCard, s)
	}

	rankPart = strings.ToUpper(rankPart)
	for r := Ace; r <= King; r++ {
		if rankSymbols[r] == rankPart {
			return Card{Rank: r, Suit: suit}, nil
		}
	}
	return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrInvalidCard, s)
}

// MustParseCard is like ParseCard but panics on error. It is intended for
// static tables and tests.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// deck is the canonical cycle in solar order: Hearts, Clubs, Diamonds, Spades,
// each Ace through King. Index i corresponds to solar value i+1.
var deck = func() [DeckSize]Card {
	var d [DeckSize]Card
	for s := Hearts; s <= Spades; s++ {
		for r := Ace; r <= King; r++ {
			d[int(s)*13+int(r)-1] = Card{Rank: r, Suit: s}
		}
	}
	return d
}()

// CardAt returns the card at index i of the canonical deck.
func CardAt(i int) (Card, error) {
	if i < 0 || i >= DeckSize {
		return Card{}, fmt.Errorf("%w: %d not in 0..%d", ErrInvalidIndex, i, DeckSize-1)
	}
	return deck[i], nil
}

// IndexOf returns the canonical deck index of c.
func IndexOf(c Card) (int, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: card %v is not in the deck", ErrInvalidIndex, c)
	}
	return int(c.Suit)*13 + int(c.Rank) - 1, nil
}

// Deck returns a copy of the canonical deck order.
func Deck() []Card {
	out := make([]Card, DeckSize)
	copy(out, deck[:])
	return out
}

// cardAtWrapped returns the deck card at i modulo the deck size. Negative
// offsets wrap backwards.
func cardAtWrapped(i int) Card {
	return deck[((i%DeckSize)+DeckSize)%DeckSize]
}
