package round

import (
	"testing"
	"time"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
)

func kst(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, FixedZone(9))
}

func TestRound(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		at   time.Time
		want lotto.DrawRound
	}{
		{"epoch morning", kst(2002, 12, 7, 10, 0), 2},
		{"epoch at cutoff", kst(2002, 12, 7, 20, 0), 3},
		{"day after epoch", kst(2002, 12, 8, 0, 0), 2},
		{"six days after epoch", kst(2002, 12, 13, 23, 59), 2},
		{"one week after epoch", kst(2002, 12, 14, 9, 0), 3},
		{"saturday before cutoff", kst(2026, 2, 14, 19, 55), 1212},
		{"saturday at cutoff", kst(2026, 2, 14, 20, 0), 1213},
		{"saturday after cutoff", kst(2026, 2, 14, 23, 30), 1213},
		{"sunday after cutoff resets", kst(2026, 2, 15, 0, 5), 1212},
		{"monday", kst(2026, 2, 9, 12, 0), 1211},
		{"before epoch clamps", kst(2001, 1, 1, 0, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Round(tt.at); got != tt.want {
				t.Errorf("Round(%s) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}

func TestRound_EvaluatesInLocation(t *testing.T) {
	c := New()

	// 11:00 UTC on Saturday is 20:00 in Seoul.
	utc := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	if got := c.Round(utc); got != 1213 {
		t.Errorf("Round(%s) = %d, want 1213", utc, got)
	}

	// 16:00 UTC on Friday is already Saturday 01:00 in Seoul.
	friday := time.Date(2026, 2, 13, 16, 0, 0, 0, time.UTC)
	if got := c.Round(friday); got != 1212 {
		t.Errorf("Round(%s) = %d, want 1212", friday, got)
	}
}

func TestCurrent_UsesInjectedNow(t *testing.T) {
	c := New()
	c.Now = func() time.Time { return kst(2002, 12, 14, 21, 0) }

	if got := c.Current(); got != 4 {
		t.Errorf("Current() = %d, want 4", got)
	}
}

func hours(h int) *int { return &h }

func TestFromConfig(t *testing.T) {
	c, err := FromConfig(Config{
		Epoch:          "2020-01-04",
		CutoffWeekday:  "Fri",
		CutoffTime:     "18:30",
		UTCOffsetHours: hours(0),
	})
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}

	// 2020-01-10 is a Friday, six days after the epoch.
	before := time.Date(2020, 1, 10, 18, 29, 0, 0, time.UTC)
	after := time.Date(2020, 1, 10, 18, 30, 0, 0, time.UTC)
	if got := c.Round(before); got != 2 {
		t.Errorf("Round(before) = %d, want 2", got)
	}
	if got := c.Round(after); got != 3 {
		t.Errorf("Round(after) = %d, want 3", got)
	}
}

func TestFromConfig_Defaults(t *testing.T) {
	c, err := FromConfig(Config{})
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if got := c.Round(kst(2002, 12, 7, 10, 0)); got != 2 {
		t.Errorf("Round(epoch) = %d, want 2", got)
	}
	if _, offset := time.Date(2026, 2, 9, 0, 0, 0, 0, c.Location).Zone(); offset != 9*3600 {
		t.Errorf("offset = %ds, want the +9h default", offset)
	}

	// 2026-02-14 11:30 UTC is 20:30 in Korea, past the Saturday cutoff.
	if got := c.Round(time.Date(2026, 2, 14, 11, 30, 0, 0, time.UTC)); got != 1213 {
		t.Errorf("Round() = %d, want 1213", got)
	}
}

func TestFromConfig_Invalid(t *testing.T) {
	tests := []Config{
		{Epoch: "07/12/2002"},
		{CutoffWeekday: "someday"},
		{CutoffTime: "8pm"},
		{UTCOffsetHours: hours(15)},
	}

	for _, cfg := range tests {
		if _, err := FromConfig(cfg); err == nil {
			t.Errorf("FromConfig(%+v) accepted invalid input", cfg)
		}
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock(" 20:00 ")
	if err != nil || got != 20*time.Hour {
		t.Errorf("ParseClock(20:00) = %v, %v", got, err)
	}
}
