// =============================================================================
// Lotto QR Generator - Delimited (CSV) Source
// =============================================================================
//
// CSV exports are treated as tables: every record is a row and goes through
// the same row rule as a spreadsheet row. The reader is configured leniently
// because these files come from many tools:
//   - Variable number of fields per record
//   - Lazy quotes
//   - Leading space trimmed from fields
//   - EUC-KR content decoded the same way as plain text
//
// Header rows need no special handling: a header has no numeric cells, so it
// is simply reported as a skipped row.
//
// =============================================================================

package extract

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// DelimitedParser extracts one game per CSV record.
type DelimitedParser struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// DataStartRow is the 1-indexed row where reading begins. Zero or one
	// means the first row.
	DataStartRow int
}

// Kind implements Parser.
func (p *DelimitedParser) Kind() Kind {
	return KindDelimited
}

// Extract implements Parser.
func (p *DelimitedParser) Extract(doc Document) (*Extraction, error) {
	reader := csv.NewReader(strings.NewReader(DecodeText(doc.Data)))
	configureReader(reader, p.Comma)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &DocumentError{Name: doc.Name, Kind: KindDelimited, Err: fmt.Errorf("failed to read CSV: %w", err)}
	}

	start := 0
	if p.DataStartRow > 1 {
		start = p.DataStartRow - 1
	}
	if start > len(rows) {
		start = len(rows)
	}

	x := newExtraction()
	extractRows(x, rows[start:], start)
	return x, nil
}

// ParseDelimiter maps a configured delimiter name to a rune.
func ParseDelimiter(name string) rune {
	switch name {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if len(name) > 0 {
			return rune(name[0])
		}
		return ','
	}
}

// configureReader applies the lenient settings described above.
func configureReader(reader *csv.Reader, comma rune) {
	if comma == 0 {
		comma = ','
	}
	reader.Comma = comma

	// Allow variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	reader.TrimLeadingSpace = true
}
