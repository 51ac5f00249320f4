// =============================================================================
// Lotto QR Generator - Spreadsheet Source
// =============================================================================
//
// This module reads .xlsx workbooks. Every visible sheet is read in workbook
// order and every row is a candidate game:
//
//   | A  | B  | C  | D  | E  | F  | G (ignored) |
//   |----|----|----|----|----|----|-------------|
//   | 3  | 15 | 22 | 8  | 41 | 5  | memo        |
//   |    | 7  | 11 |    | 19 | 23 | 30 | 44     |   <- blanks are skipped
//
// Only the first six non-empty cells of a row are considered. Rows with
// fewer than six, with text cells, or with numbers outside 1-45 are skipped.
//
// =============================================================================

package extract

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetParser extracts one game per worksheet row.
type SpreadsheetParser struct{}

// Kind implements Parser.
func (p *SpreadsheetParser) Kind() Kind {
	return KindSpreadsheet
}

// Extract implements Parser.
func (p *SpreadsheetParser) Extract(doc Document) (*Extraction, error) {
	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	if err != nil {
		return nil, &DocumentError{Name: doc.Name, Kind: KindSpreadsheet, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DocumentError{Name: doc.Name, Kind: KindSpreadsheet, Err: fmt.Errorf("workbook has no sheets")}
	}

	x := newExtraction()
	for _, sheetName := range sheets {
		visible, err := f.GetSheetVisible(sheetName)
		if err == nil && !visible {
			continue
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, &DocumentError{Name: doc.Name, Kind: KindSpreadsheet, Err: fmt.Errorf("failed to read sheet '%s': %w", sheetName, err)}
		}

		extractRows(x, rows, 0)
	}

	return x, nil
}
