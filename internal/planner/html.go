package planner

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/narrative"
)

//go:embed templates/planner.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/planner.html.tmpl"))

type page struct {
	HeaderDate    string
	DayLabel      string
	Period        string
	FractalCard   string
	FractalBlack  bool
	Reading       string
	GlobalCard    string
	GlobalBlack   bool
	CollisionText string
	FooterID      string
}

type document struct {
	Owner      string
	OwnerUpper string
	Year       int
	SpreadYear int
	BirthCard  string
	Pages      []page
}

// RenderHTML writes one printable page per day of p. Callers that want a
// sample can pass a Planner whose Days have been sliced.
func RenderHTML(w io.Writer, p Planner) error {
	doc := document{
		Owner:      p.Owner,
		OwnerUpper: strings.ToUpper(p.Owner),
		Year:       p.Year,
		SpreadYear: p.SpreadYear,
		BirthCard:  p.BirthCard.String(),
		Pages:      make([]page, 0, len(p.Days)),
	}

	for _, d := range p.Days {
		date, err := time.Parse(cardology.DateLayout, d.Date)
		if err != nil {
			return fmt.Errorf("planner day %d: %w", d.DayOfYear, err)
		}
		doc.Pages = append(doc.Pages, page{
			HeaderDate:    date.Format("Mon, Jan 02"),
			DayLabel:      fmt.Sprintf("Day %03d / %d", d.DayOfYear, cardology.CycleLength),
			Period:        strings.ToUpper(string(d.Period)),
			FractalCard:   d.FractalCard.String(),
			FractalBlack:  d.FractalCard.IsBlack(),
			Reading:       narrative.DailySentence(d.Period, d.FractalCard, d.CollisionPlanet),
			GlobalCard:    d.GlobalCard.String(),
			GlobalBlack:   d.GlobalCard.IsBlack(),
			CollisionText: narrative.CollisionText(d.GlobalCard, d.CollisionPlanet),
			FooterID:      FooterID(p.Year, p.Owner, d.DayOfYear-1),
		})
	}

	if err := pageTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to render planner: %w", err)
	}
	return nil
}

// FooterID returns the print authorization id for a page, e.g.
// TAA-2026-CAS-0004.
func FooterID(year int, owner string, offset int) string {
	prefix := []rune(strings.ToUpper(strings.TrimSpace(owner)))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("TAA-%d-%s-%04d", year, string(prefix), offset)
}
