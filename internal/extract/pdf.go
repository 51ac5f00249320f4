// =============================================================================
// Lotto QR Generator - PDF Source
// =============================================================================
//
// PDF pages carry positioned glyphs, not lines. Each page's glyphs are
// grouped into rows sharing a baseline, rows are read top to bottom, and
// every row is treated like a line of a plain text file. Glyph positions
// come from the page content stream with the full text state applied, so
// lines placed with Td, TD, T* or Tm all land on their own row.
//
// Glyph runs on one row are joined with a space whenever a visible gap
// separates them, so "1" and "2" drawn in neighbouring table cells stay two
// numbers instead of becoming "12".
//
// =============================================================================

package extract

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// gapRatio is the horizontal gap, relative to the font size, above which
// two glyph runs on one row are treated as separate words.
const gapRatio = 0.15

// rowRatio is the vertical distance, relative to the font size, within
// which two glyphs are on the same row.
const rowRatio = 0.3

// PDFParser extracts one game per visual line of a PDF.
type PDFParser struct {
	// Strategy decides how repeated numbers on a line are handled.
	Strategy Strategy
}

// Kind implements Parser.
func (p *PDFParser) Kind() Kind {
	return KindPDF
}

// Extract implements Parser.
func (p *PDFParser) Extract(doc Document) (x *Extraction, err error) {
	// The PDF reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			x = nil
			err = &DocumentError{Name: doc.Name, Kind: KindPDF, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return nil, &DocumentError{Name: doc.Name, Kind: KindPDF, Err: fmt.Errorf("failed to open PDF: %w", err)}
	}

	x = newExtraction()
	lineOffset := 0
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		lines := rowLines(groupRows(page.Content().Text))
		extractLines(x, lines, p.Strategy, lineOffset)
		lineOffset += len(lines)
	}

	return x, nil
}

// textRow is the glyphs sharing one baseline.
type textRow struct {
	y     float64
	texts pdf.TextHorizontal
}

// groupRows buckets glyphs by baseline and orders the rows top to bottom.
// Glyphs keep their content-stream order within a row.
func groupRows(texts []pdf.Text) []textRow {
	var rows []textRow
	for _, t := range texts {
		tolerance := math.Max(rowRatio*t.FontSize, 1)
		idx := -1
		for i := range rows {
			if math.Abs(rows[i].y-t.Y) <= tolerance {
				idx = i
				break
			}
		}
		if idx < 0 {
			rows = append(rows, textRow{y: t.Y})
			idx = len(rows) - 1
		}
		rows[idx].texts = append(rows[idx].texts, t)
	}

	// PDF y grows upwards.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	return rows
}

// rowLines rebuilds one text line per row.
func rowLines(rows []textRow) []string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, rowText(row.texts))
	}
	return lines
}

// rowText joins the glyph runs of one row left to right.
func rowText(texts pdf.TextHorizontal) string {
	runs := make([]pdf.Text, len(texts))
	copy(runs, texts)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var b strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			gap := t.X - (prev.X + prev.W)
			if gap > gapRatio*fontSize(t, prev) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}

func fontSize(a, b pdf.Text) float64 {
	if a.FontSize > b.FontSize {
		return a.FontSize
	}
	return b.FontSize
}
