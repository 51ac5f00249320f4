// =============================================================================
// Lotto QR Generator - History Export
// =============================================================================
//
// This module writes the purchase history of a run as CSV, one record per
// generated code:
//
//   round,batch,numbers,payload
//   1211,1,[1, 2, 3, 4, 5, 6] / [7, 8, 9, 10, 11, 12],http://qr...
//
// The file starts with a UTF-8 byte order mark by default so spreadsheet
// applications open Korean headers correctly. Header labels come from the
// caller; this package has no notion of locale.
//
// =============================================================================

package history

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
)

// =============================================================================
// RECORDS AND OPTIONS
// =============================================================================

// Record is one generated code.
type Record struct {
	Round   lotto.DrawRound
	Batch   int
	Block   lotto.Block
	Payload string
}

// Headers are the column labels.
type Headers struct {
	Round   string
	Batch   string
	Numbers string
	Payload string
}

// ExportOptions contains options for CSV generation.
type ExportOptions struct {
	// Headers are written as the first record.
	Headers Headers

	// IncludeBOM prefixes the output with a UTF-8 byte order mark.
	IncludeBOM bool

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// DefaultExportOptions returns English headers with a byte order mark.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Headers: Headers{
			Round:   "Round",
			Batch:   "Batch",
			Numbers: "Numbers",
			Payload: "QR URL",
		},
		IncludeBOM: true,
		Comma:      ',',
	}
}

// =============================================================================
// CSV GENERATION
// =============================================================================

// Generate renders records as CSV.
func Generate(records []Record, opts ExportOptions) ([]byte, error) {
	var buf bytes.Buffer
	if opts.IncludeBOM {
		buf.WriteString("\uFEFF")
	}

	w := csv.NewWriter(&buf)
	if opts.Comma != 0 {
		w.Comma = opts.Comma
	}

	h := opts.Headers
	if err := w.Write([]string{h.Round, h.Batch, h.Numbers, h.Payload}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Round.String(),
			strconv.Itoa(r.Batch),
			FormatBlock(r.Block),
			r.Payload,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write batch %d: %w", r.Batch, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile generates the CSV and writes it to path, creating parent
// directories as needed.
func WriteFile(path string, records []Record, opts ExportOptions) error {
	data, err := Generate(records, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// FormatGame renders a game as "[1, 2, 3, 4, 5, 6]" in ascending order.
func FormatGame(g lotto.Game) string {
	s := g.Sorted()
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatBlock joins the games of a block with " / ".
func FormatBlock(b lotto.Block) string {
	parts := make([]string, len(b))
	for i, g := range b {
		parts[i] = FormatGame(g)
	}
	return strings.Join(parts, " / ")
}
