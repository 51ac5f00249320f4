package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
	"github.com/ginjaninja78/lotto-qr-generator/internal/validation"
)

// =============================================================================
// DUPLICATE STRATEGY
// =============================================================================

// Strategy decides how repeated numbers on one text line are treated.
type Strategy int

const (
	// DedupeThenFirstSix drops repeated values first, then takes the first
	// six distinct numbers in order of appearance.
	DedupeThenFirstSix Strategy = iota

	// KeepDuplicatesFirstSix takes the first six in-range values exactly as
	// they appear. When those six contain a repeat the line yields no game.
	KeepDuplicatesFirstSix
)

// ParseStrategy maps a configuration value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dedupe", "dedupe_then_first_six":
		return DedupeThenFirstSix, nil
	case "keep", "keep_duplicates", "keep_duplicates_first_six":
		return KeepDuplicatesFirstSix, nil
	default:
		return DedupeThenFirstSix, fmt.Errorf("unknown extraction strategy %q", s)
	}
}

func (s Strategy) String() string {
	if s == KeepDuplicatesFirstSix {
		return "keep_duplicates"
	}
	return "dedupe"
}

// =============================================================================
// LINE EXTRACTION
// =============================================================================

var digitRun = regexp.MustCompile(`\d+`)

// FromLine extracts a game from one line of text.
func FromLine(line string, strategy Strategy) (lotto.Game, bool) {
	g, rejected := parseLine(line, strategy)
	return g, rejected == nil
}

// parseLine scans line for maximal digit runs, keeps the ones in [1,45],
// applies strategy, and validates the first six survivors.
func parseLine(line string, strategy Strategy) (lotto.Game, *validation.ValidationError) {
	var nums []int
	seen := make(map[int]bool)

	for _, run := range digitRun.FindAllString(line, -1) {
		n, err := strconv.Atoi(run)
		if err != nil || !validation.InRange(n) {
			// Runs too long for an int are out of range as well.
			continue
		}
		if strategy == DedupeThenFirstSix {
			if seen[n] {
				continue
			}
			seen[n] = true
		}
		nums = append(nums, n)
	}

	if len(nums) < lotto.NumbersPerGame {
		return lotto.Game{}, &validation.ValidationError{
			Severity: validation.SeverityWarning,
			Field:    "numbers",
			Value:    strings.TrimSpace(line),
			Rule:     "count",
			Message:  fmt.Sprintf("found %d usable numbers, need %d", len(nums), lotto.NumbersPerGame),
		}
	}

	g, err := lotto.NewGame(nums[:lotto.NumbersPerGame])
	if err != nil {
		var ve *validation.ValidationError
		if !errors.As(err, &ve) {
			ve = &validation.ValidationError{Severity: validation.SeverityWarning, Field: "numbers", Message: err.Error()}
		}
		ve.Value = strings.TrimSpace(line)
		return lotto.Game{}, ve
	}
	return g, nil
}

// extractLines runs parseLine over every non-blank line.
func extractLines(x *Extraction, lines []string, strategy Strategy, lineOffset int) {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		g, rejected := parseLine(line, strategy)
		x.add(g, rejected, lineOffset+i+1)
	}
}
