// Package pdf typesets composed letters onto Letter-size PDF pages.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/analogalgo/letters/internal/narrative"
)

// ErrEmptyLetter is returned when a letter has no paragraphs.
var ErrEmptyLetter = errors.New("letter has no content")

const (
	marginMM       = 25.4
	bottomMarginMM = 19
	header         = "HEARTS  -  CLUBS  -  DIAMONDS  -  SPADES"
	footer         = "THE ANALOG ALGORITHM"
)

// Renderer writes letters as PDF documents.
type Renderer struct {
	outputDir string
	compress  bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithoutCompression disables stream compression. Useful when inspecting the
// output.
func WithoutCompression() Option {
	return func(r *Renderer) { r.compress = false }
}

// NewRenderer returns a renderer that writes files under outputDir.
func NewRenderer(outputDir string, opts ...Option) *Renderer {
	r := &Renderer{outputDir: outputDir, compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render typesets letter to w.
func (r *Renderer) Render(w io.Writer, letter narrative.Letter) error {
	if len(letter.Paragraphs) == 0 {
		return ErrEmptyLetter
	}

	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetCompression(r.compress)
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(true, bottomMarginMM)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFooterFunc(func() {
		doc.SetY(-10)
		doc.SetFont("Courier", "", 6)
		doc.CellFormat(0, 4, footer, "", 0, "C", false, 0, "")
	})

	doc.AddPage()
	doc.SetFont("Courier", "B", 14)
	doc.CellFormat(0, 8, header, "", 1, "C", false, 0, "")
	doc.SetFont("Courier", "", 8)
	doc.CellFormat(0, 6, tr(strings.ToUpper(letter.Month)), "", 1, "C", false, 0, "")
	doc.Ln(10)

	doc.SetFont("Times", "", 11)
	doc.MultiCell(0, 6, tr(fmt.Sprintf("Dear %s,", letter.FirstName)), "", "L", false)
	doc.Ln(3)
	for _, p := range letter.Paragraphs {
		doc.MultiCell(0, 6, tr(p), "", "L", false)
		doc.Ln(3)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// WriteFile renders letter into the output directory under name and returns
// the full path.
func (r *Renderer) WriteFile(name string, letter narrative.Letter) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(r.outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create pdf file: %w", err)
	}

	if err := r.Render(f, letter); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close pdf file: %w", err)
	}
	return path, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return "unnamed"
	}
	return s
}

// ManualFileName names a letter produced from the admin dashboard, e.g.
// manual_Cassidy_2026-03.pdf.
func ManualFileName(firstName, month string) string {
	return fmt.Sprintf("manual_%s_%s.pdf", sanitize(firstName), sanitize(month))
}

// OrderFileName names a letter produced for a storefront order.
func OrderFileName(orderID string) string {
	return fmt.Sprintf("order_%s.pdf", sanitize(orderID))
}
