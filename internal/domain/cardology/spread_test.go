package cardology

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(t *testing.T, ss ...string) []Card {
	t.Helper()
	out := make([]Card, len(ss))
	for i, s := range ss {
		c, err := ParseCard(s)
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func TestRowsOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[NumRows]Planet{Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune},
		Rows())
	assert.Equal(t, 3, RowIndex(Jupiter))
	assert.Equal(t, -1, RowIndex("Pluto"))
}

func TestEverySpreadPartitionsTheDeck(t *testing.T) {
	t.Parallel()

	for year := MinSpreadYear; year <= MaxSpreadYear; year++ {
		s := GenerateYearlySpreadData(year)
		require.Equal(t, year, s.Year())

		counts := make(map[Card]int, DeckSize)
		for _, p := range Rows() {
			row := s.Row(p)
			require.Len(t, row, RowLength)
			for _, c := range row {
				counts[c]++
			}
		}
		crown := s.Crown()
		require.Len(t, crown, CrownSize)
		for _, c := range crown {
			counts[c]++
		}

		require.Len(t, counts, DeckSize, "year %d", year)
		for c, n := range counts {
			assert.Equal(t, 1, n, "year %d card %s", year, c)
		}
	}
}

func TestSpreadYearOneAndTwo(t *testing.T) {
	t.Parallel()

	one := GenerateYearlySpreadData(1)
	assert.Equal(t, cards(t, "A♥", "2♥", "3♥", "4♥", "5♥", "6♥", "7♥"), one.Row(Mercury))
	assert.Equal(t, cards(t, "J♠", "Q♠", "K♠"), one.Crown())

	two := GenerateYearlySpreadData(2)
	assert.Equal(t, cards(t, "5♥", "9♥", "K♥", "4♣", "8♣", "Q♣", "3♦"), two.Row(Mercury))
	assert.Equal(t, cards(t, "9♠", "K♠", "A♥"), two.Crown())
}

func TestSpreadYearClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{45, 45},
		{90, 90},
		{91, 90},
		{200, 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampSpreadYear(tt.in))
		assert.Equal(t, GenerateYearlySpreadData(tt.want), GenerateYearlySpreadData(tt.in), "year %d", tt.in)
	}

	assert.Equal(t, 36, SpreadYearFor(1991, 2026))
	assert.Equal(t, 1, SpreadYearFor(2030, 2026))
	assert.Equal(t, 90, SpreadYearFor(1900, 2026))
}

func TestSpreadLocate(t *testing.T) {
	t.Parallel()

	s := GenerateYearlySpreadData(1)

	loc, err := s.Locate(MustParseCard("3♥"))
	require.NoError(t, err)
	assert.Equal(t, Location{Planet: Mercury, Index: 2}, loc)

	loc, err = s.Locate(MustParseCard("A♣"))
	require.NoError(t, err)
	assert.Equal(t, Location{Planet: Venus, Index: 6}, loc)

	loc, err = s.Locate(MustParseCard("Q♠"))
	require.NoError(t, err)
	assert.Equal(t, Location{Crown: true, Index: 1}, loc)
	assert.Equal(t, "crown[1]", loc.String())

	for year := MinSpreadYear; year <= MaxSpreadYear; year += 7 {
		spread := GenerateYearlySpreadData(year)
		for _, c := range Deck() {
			_, err := spread.Locate(c)
			assert.NoError(t, err, "year %d card %s", year, c)
		}
	}

	_, err = Spread{}.Locate(MustParseCard("A♥"))
	assert.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestSpreadValuesAreIndependent(t *testing.T) {
	t.Parallel()

	s := GenerateYearlySpreadData(10)
	row := s.Row(Venus)
	row[0] = Card{}
	assert.NotEqual(t, Card{}, GenerateYearlySpreadData(10).Row(Venus)[0])
}

func TestNewSpread(t *testing.T) {
	t.Parallel()

	src := GenerateYearlySpreadData(12)
	rebuilt, err := NewSpread(12, src.Grid(), src.Crown())
	require.NoError(t, err)
	assert.Equal(t, src, rebuilt)

	grid := src.Grid()
	grid[Mars] = grid[Mars][:6]
	_, err = NewSpread(12, grid, src.Crown())
	assert.ErrorIs(t, err, ErrMalformedSpread)

	grid = src.Grid()
	grid[Mars][0] = grid[Venus][0]
	_, err = NewSpread(12, grid, src.Crown())
	assert.ErrorIs(t, err, ErrMalformedSpread)

	_, err = NewSpread(12, src.Grid(), src.Crown()[:2])
	assert.ErrorIs(t, err, ErrMalformedSpread)
}

func TestSpreadJSONRoundTrip(t *testing.T) {
	t.Parallel()

	src := GenerateYearlySpreadData(36)
	b, err := json.Marshal(src)
	require.NoError(t, err)

	var decoded Spread
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, src, decoded)
}
