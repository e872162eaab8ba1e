package planner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/narrative"
)

func cassidy(t *testing.T) Planner {
	t.Helper()
	birth, err := ParseBirthDate("1991-02-17")
	require.NoError(t, err)
	p, err := Build("Cassidy", birth, 2026)
	require.NoError(t, err)
	return p
}

func TestBuildCalendar(t *testing.T) {
	t.Parallel()

	p := cassidy(t)
	require.Len(t, p.Days, cardology.CycleLength)
	assert.Equal(t, 36, p.SpreadYear)
	assert.Equal(t, "8♦", p.BirthCard.String())

	first := p.Days[0]
	assert.Equal(t, "2026-02-17", first.Date)
	assert.Equal(t, 1, first.DayOfYear)
	assert.Equal(t, cardology.Mercury, first.Period)
	assert.Equal(t, p.BirthCard, first.GlobalCard, "the birthday's global card is the birth card")

	assert.Equal(t, cardology.Venus, p.Days[52].Period)
	assert.Equal(t, cardology.Neptune, p.Days[363].Period)
	assert.Equal(t, "2027-02-15", p.Days[363].Date)

	chain, err := cardology.ExtractChain(cardology.GenerateYearlySpreadData(36), p.BirthCard, 52)
	require.NoError(t, err)
	for i, d := range p.Days {
		assert.Equal(t, chain[i%52], d.FractalCard, "day %d", i)
		if d.CollisionPlanet != narrative.Unanchored {
			assert.GreaterOrEqual(t, cardology.RowIndex(cardology.Planet(d.CollisionPlanet)), 0)
		}
	}

	// The day the letter engine resolves for a target date matches the calendar.
	res := cardology.CalculateLetterData("Cassidy", 1991, 2, 17, "2026-03-15")
	require.True(t, res.OK())
	day := p.Days[res.DayOffset]
	assert.Equal(t, "2026-03-15", day.Date)
	assert.Equal(t, res.Period.Card, day.FractalCard)
	assert.Equal(t, res.Period.Planet, day.Period)
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	_, err := Build("  ", time.Date(1991, 2, 17, 0, 0, 0, 0, time.UTC), 2026)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = ParseBirthDate("1991-02-30")
	assert.ErrorIs(t, err, cardology.ErrInvalidDate)
}

func TestBuildLeapBirthday(t *testing.T) {
	t.Parallel()

	birth, err := ParseBirthDate("2000-02-29")
	require.NoError(t, err)
	p, err := Build("Leap", birth, 2026)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", p.Days[0].Date)
	assert.Equal(t, 27, p.SpreadYear)
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	p := cassidy(t)
	p.Days = p.Days[:3]

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, p))
	out := buf.String()

	assert.Equal(t, 3, strings.Count(out, `class="book-page"`))
	assert.Contains(t, out, "Tue, Feb 17")
	assert.Contains(t, out, "Day 001 / 364")
	assert.Contains(t, out, "Day 003 / 364")
	assert.Contains(t, out, "<strong>CASSIDY</strong>")
	assert.Contains(t, out, "System Period: MERCURY")
	assert.Contains(t, out, "TAA-2026-CAS-0002")
	assert.Contains(t, out, "GLOBAL OVERRIDE:")
}

func TestFooterID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TAA-2026-CAS-0004", FooterID(2026, "Cassidy", 4))
	assert.Equal(t, "TAA-2026-AL-0000", FooterID(2026, "al", 0))
	assert.Equal(t, "TAA-2026-ÉLO-0363", FooterID(2026, "Éloïse", 363))
}
