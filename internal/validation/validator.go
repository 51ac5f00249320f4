// =============================================================================
// Lotto QR Generator - Validation Rules
// =============================================================================
//
// This module holds the rules every extracted value has to pass before it can
// become part of a game, a block, or a payload:
//   - Number rules: exactly six numbers, each in [1,45], no repeats
//   - Draw round rules: digits only, positive
//   - Block rules: between one and five games
//
// ERROR HANDLING:
//   - Rejections are values, not panics
//   - Each error carries the field, the offending value, and the rule name
//   - Per-document rejections are collected into a Result so the caller can
//     report skipped lines without aborting the document
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// LIMITS
// =============================================================================

const (
	// MinNumber is the lowest selectable lottery number.
	MinNumber = 1

	// MaxNumber is the highest selectable lottery number.
	MaxNumber = 45

	// NumbersPerGame is the size of one selection.
	NumbersPerGame = 6

	// MaxGamesPerBlock is the vendor limit of games carried by one code.
	MaxGamesPerBlock = 5
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single rejected value.
type ValidationError struct {
	// Severity is "error" for user input that stops processing and
	// "warning" for a skipped line or row.
	Severity string

	// Field names what was validated ("numbers", "round", "block").
	Field string

	// Value is the raw input that failed.
	Value string

	// Rule is the rule that was violated.
	Rule string

	// Message is a human-readable explanation.
	Message string

	// Line is the 1-indexed source line or row, 0 when not applicable.
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d, %s: %s (value: '%s')",
			strings.ToUpper(e.Severity), e.Line, e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("[%s] %s: %s (value: '%s')",
		strings.ToUpper(e.Severity), e.Field, e.Message, e.Value)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result collects rejections across one document.
type Result struct {
	// Errors contains every rejection in the order it was found.
	Errors []*ValidationError

	// ErrorCount is the number of fatal errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int
}

// NewResult returns an empty Result.
func NewResult() *Result {
	return &Result{Errors: make([]*ValidationError, 0)}
}

// Add records a rejection. A nil error is ignored.
func (r *Result) Add(err *ValidationError) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err)
	if err.Severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// Merge appends all rejections from another result.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	for _, err := range other.Errors {
		r.Add(err)
	}
}

// IsValid reports whether no fatal error was recorded.
func (r *Result) IsValid() bool {
	return r.ErrorCount == 0
}

// =============================================================================
// NUMBER RULES
// =============================================================================

// Numbers checks that nums is a well-formed selection: exactly six values,
// each within [MinNumber, MaxNumber], none repeated.
func Numbers(nums []int) *ValidationError {
	value := joinInts(nums)

	if len(nums) != NumbersPerGame {
		return &ValidationError{
			Severity: SeverityWarning,
			Field:    "numbers",
			Value:    value,
			Rule:     "count",
			Message:  fmt.Sprintf("expected %d numbers, got %d", NumbersPerGame, len(nums)),
		}
	}

	seen := make(map[int]bool, NumbersPerGame)
	for _, n := range nums {
		if n < MinNumber || n > MaxNumber {
			return &ValidationError{
				Severity: SeverityWarning,
				Field:    "numbers",
				Value:    value,
				Rule:     "range",
				Message:  fmt.Sprintf("%d is outside %d-%d", n, MinNumber, MaxNumber),
			}
		}
		if seen[n] {
			return &ValidationError{
				Severity: SeverityWarning,
				Field:    "numbers",
				Value:    value,
				Rule:     "unique",
				Message:  fmt.Sprintf("%d appears more than once", n),
			}
		}
		seen[n] = true
	}

	return nil
}

// InRange reports whether n is a selectable number.
func InRange(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// =============================================================================
// DRAW ROUND RULES
// =============================================================================

// DrawRound parses user-supplied round input. Surrounding whitespace is
// ignored; anything other than a positive decimal integer is rejected.
func DrawRound(input string) (int, error) {
	trimmed := strings.TrimSpace(input)

	if trimmed == "" {
		return 0, &ValidationError{
			Severity: SeverityError,
			Field:    "round",
			Value:    input,
			Rule:     "required",
			Message:  "draw round is empty",
		}
	}

	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return 0, &ValidationError{
				Severity: SeverityError,
				Field:    "round",
				Value:    input,
				Rule:     "digits",
				Message:  "draw round must contain digits only",
			}
		}
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return 0, &ValidationError{
			Severity: SeverityError,
			Field:    "round",
			Value:    input,
			Rule:     "positive",
			Message:  "draw round must be a positive integer",
		}
	}

	return n, nil
}

// =============================================================================
// BLOCK RULES
// =============================================================================

// BlockSize checks that a block carries between one and MaxGamesPerBlock games.
func BlockSize(n int) *ValidationError {
	if n < 1 || n > MaxGamesPerBlock {
		return &ValidationError{
			Severity: SeverityError,
			Field:    "block",
			Value:    strconv.Itoa(n),
			Rule:     "size",
			Message:  fmt.Sprintf("block must hold 1-%d games", MaxGamesPerBlock),
		}
	}
	return nil
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d issue(s):\n\n", len(errors)))
	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
