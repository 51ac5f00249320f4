package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestNumbers(t *testing.T) {
	cases := []struct {
		name string
		nums []int
		rule string
	}{
		{"valid", []int{1, 2, 3, 4, 5, 45}, ""},
		{"short", []int{1, 2, 3, 4, 5}, "count"},
		{"long", []int{1, 2, 3, 4, 5, 6, 7}, "count"},
		{"zero", []int{0, 2, 3, 4, 5, 6}, "range"},
		{"too high", []int{46, 2, 3, 4, 5, 6}, "range"},
		{"repeat", []int{3, 15, 22, 8, 8, 41}, "unique"},
	}
	for _, tc := range cases {
		err := Numbers(tc.nums)
		if tc.rule == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if err == nil || err.Rule != tc.rule {
			t.Fatalf("%s: err=%v want rule %q", tc.name, err, tc.rule)
		}
	}
}

func TestDrawRound(t *testing.T) {
	n, err := DrawRound(" 1211 ")
	if err != nil || n != 1211 {
		t.Fatalf("n=%d err=%v", n, err)
	}

	for _, input := range []string{"", "12a", "-5", "0", "1.5", "abc"} {
		_, err := DrawRound(input)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("input %q: err=%v, want *ValidationError", input, err)
		}
		if ve.Field != "round" || ve.Severity != SeverityError {
			t.Fatalf("input %q: %+v", input, ve)
		}
	}
}

func TestBlockSize(t *testing.T) {
	for _, n := range []int{1, 5} {
		if err := BlockSize(n); err != nil {
			t.Fatalf("size %d: %v", n, err)
		}
	}
	for _, n := range []int{0, 6} {
		if err := BlockSize(n); err == nil {
			t.Fatalf("size %d accepted", n)
		}
	}
}

func TestResult_Counts(t *testing.T) {
	r := NewResult()
	r.Add(nil)
	r.Add(&ValidationError{Severity: SeverityWarning, Field: "numbers"})
	r.Add(&ValidationError{Severity: SeverityError, Field: "round"})
	if r.WarningCount != 1 || r.ErrorCount != 1 || r.IsValid() {
		t.Fatalf("result=%+v", r)
	}

	other := NewResult()
	other.Add(&ValidationError{Severity: SeverityWarning, Line: 3})
	r.Merge(other)
	if len(r.Errors) != 3 || r.WarningCount != 2 {
		t.Fatalf("merged=%+v", r)
	}

	out := FormatErrors(r.Errors)
	if !strings.Contains(out, "3 issue(s)") || !strings.Contains(out, "line 3") {
		t.Fatalf("format=%q", out)
	}
}
