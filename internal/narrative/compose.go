package narrative

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/analogalgo/letters/internal/domain/cardology"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrMissingData is returned when a letter is composed without engine data.
var ErrMissingData = errors.New("letter data is required")

// Letter is the composed body of a personalized letter.
type Letter struct {
	FirstName  string
	Month      string // e.g. "March 2026"
	Paragraphs []string
}

// Text joins the paragraphs with blank lines.
func (l Letter) Text() string {
	return strings.Join(l.Paragraphs, "\n\n")
}

type letterData struct {
	Name  string
	Month string
	Data  cardology.LetterData
}

// Composer renders letter bodies from a parsed template.
type Composer struct {
	tmpl *template.Template
}

var funcs = template.FuncMap{
	"prefix":  PeriodPrefix,
	"meaning": CardMeaning,
	"suffix":  CollisionSuffix,
	"trait":   SuitTrait,
	"lower":   strings.ToLower,
}

// NewComposer parses the embedded letter template.
func NewComposer() (*Composer, error) {
	tmpl, err := template.New("letter.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/letter.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse letter template: %w", err)
	}
	return &Composer{tmpl: tmpl}, nil
}

// NewComposerFromString parses a custom letter template. The same helper
// functions are available as in the embedded template.
func NewComposerFromString(name, text string) (*Composer, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse letter template %q: %w", name, err)
	}
	return &Composer{tmpl: tmpl}, nil
}

// Compose renders the letter for firstName from engine output. Paragraphs are
// separated by blank lines in the template.
func (c *Composer) Compose(firstName string, data *cardology.LetterData, target time.Time) (Letter, error) {
	if data == nil {
		return Letter{}, ErrMissingData
	}

	month := target.Format("January 2006")
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, letterData{Name: firstName, Month: month, Data: *data}); err != nil {
		return Letter{}, fmt.Errorf("failed to execute letter template: %w", err)
	}

	return Letter{
		FirstName:  firstName,
		Month:      month,
		Paragraphs: SplitParagraphs(buf.String()),
	}, nil
}

// SplitParagraphs splits text on blank lines, trimming each paragraph and
// dropping empty ones.
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DailySentence builds the planner reading for one day from the period, the
// day's fractal card and the collision label.
func DailySentence(planet cardology.Planet, card cardology.Card, collision string) string {
	return fmt.Sprintf("%s For your specific coordinates, %s %s",
		PeriodPrefix(planet), strings.ToLower(CardMeaning(card)), CollisionSuffix(collision))
}

// CollisionText explains the global override box of a planner page.
func CollisionText(global cardology.Card, collision string) string {
	return fmt.Sprintf("The global environment operates exactly at the %s coordinate today. "+
		"Because this variable lands mathematically inside your %s line, %s",
		global, strings.ToUpper(collision), strings.ToLower(CollisionSuffix(collision)))
}
