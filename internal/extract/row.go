package extract

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
	"github.com/ginjaninja78/lotto-qr-generator/internal/validation"
)

// =============================================================================
// ROW EXTRACTION
// =============================================================================

// FromRow extracts a game from one spreadsheet row.
func FromRow(cells []string) (lotto.Game, bool) {
	g, rejected := parseRow(cells)
	return g, rejected == nil
}

// parseRow collects the non-empty cells of a row, takes the first six,
// converts them to integers, and accepts the row only when all six are
// valid numbers. Repeats are rejected, since a Game never holds one.
func parseRow(cells []string) (lotto.Game, *validation.ValidationError) {
	values := make([]string, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			values = append(values, cell)
		}
	}
	raw := strings.Join(values, " ")

	if len(values) < lotto.NumbersPerGame {
		return lotto.Game{}, &validation.ValidationError{
			Severity: validation.SeverityWarning,
			Field:    "numbers",
			Value:    raw,
			Rule:     "count",
			Message:  fmt.Sprintf("row has %d filled cells, need %d", len(values), lotto.NumbersPerGame),
		}
	}

	nums := make([]int, lotto.NumbersPerGame)
	for i, cell := range values[:lotto.NumbersPerGame] {
		n, ok := cellInt(cell)
		if !ok {
			return lotto.Game{}, &validation.ValidationError{
				Severity: validation.SeverityWarning,
				Field:    "numbers",
				Value:    raw,
				Rule:     "numeric",
				Message:  fmt.Sprintf("cell %q is not a whole number", cell),
			}
		}
		nums[i] = n
	}

	g, err := lotto.NewGame(nums)
	if err != nil {
		var ve *validation.ValidationError
		if !errors.As(err, &ve) {
			ve = &validation.ValidationError{Severity: validation.SeverityWarning, Field: "numbers", Message: err.Error()}
		}
		ve.Value = raw
		return lotto.Game{}, ve
	}
	return g, nil
}

// cellInt reads a cell as a whole number. Spreadsheets often store integers
// as floats, so "7" and "7.0" are both accepted; "7.5" is not.
func cellInt(cell string) (int, bool) {
	if n, err := strconv.Atoi(cell); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// extractRows runs parseRow over every non-empty row.
func extractRows(x *Extraction, rows [][]string, rowOffset int) {
	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		g, rejected := parseRow(row)
		x.add(g, rejected, rowOffset+i+1)
	}
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
