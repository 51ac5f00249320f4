// =============================================================================
// Lotto QR Generator - Draw Round Calculator
// =============================================================================
//
// This module derives the draw round that is currently on sale from a
// timestamp. Draws happen weekly, starting from a fixed first draw date:
//
//   weeks = whole weeks between the epoch date and today's date
//   round = weeks + 2
//   round = round + 1   if today is the cutoff weekday and the clock is at
//                       or past the cutoff time
//
// Dates are compared as calendar dates in the configured location, so the
// result does not depend on the host time zone.
//
// The calculator performs no I/O. Now is injectable so every branch can be
// tested against fixed instants.
//
// =============================================================================

package round

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
)

// Defaults for the Korean weekly draw.
const (
	DefaultEpoch          = "2002-12-07"
	DefaultCutoffWeekday  = time.Saturday
	DefaultCutoffTime     = 20 * time.Hour
	DefaultUTCOffsetHours = 9
)

// Calculator computes draw rounds.
type Calculator struct {
	// Epoch is the date of the first draw. Only its calendar date in
	// Location is used.
	Epoch time.Time

	// CutoffWeekday is the day sales for the current round close.
	CutoffWeekday time.Weekday

	// CutoffTime is the offset from midnight at which sales close.
	CutoffTime time.Duration

	// Location is the zone in which dates and the cutoff are evaluated.
	Location *time.Location

	// Now returns the current instant. Nil means time.Now.
	Now func() time.Time
}

// New returns a Calculator with the default schedule.
func New() *Calculator {
	loc := FixedZone(DefaultUTCOffsetHours)
	epoch, _ := time.ParseInLocation(time.DateOnly, DefaultEpoch, loc)
	return &Calculator{
		Epoch:         epoch,
		CutoffWeekday: DefaultCutoffWeekday,
		CutoffTime:    DefaultCutoffTime,
		Location:      loc,
	}
}

// Config holds the textual schedule as it appears in configuration.
type Config struct {
	Epoch          string
	CutoffWeekday  string
	CutoffTime     string

	// UTCOffsetHours is the zone offset. Nil keeps the default; a zero
	// value means UTC.
	UTCOffsetHours *int
}

// FromConfig builds a Calculator from configuration values. Empty strings
// and a nil offset keep their defaults.
func FromConfig(cfg Config) (*Calculator, error) {
	c := New()

	if cfg.UTCOffsetHours != nil {
		hours := *cfg.UTCOffsetHours
		if hours < -12 || hours > 14 {
			return nil, fmt.Errorf("utc offset %d is outside -12..14", hours)
		}
		c.Location = FixedZone(hours)
	}

	epoch := DefaultEpoch
	if cfg.Epoch != "" {
		epoch = cfg.Epoch
	}
	t, err := time.ParseInLocation(time.DateOnly, epoch, c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid epoch %q: %w", cfg.Epoch, err)
	}
	c.Epoch = t

	if cfg.CutoffWeekday != "" {
		wd, err := ParseWeekday(cfg.CutoffWeekday)
		if err != nil {
			return nil, err
		}
		c.CutoffWeekday = wd
	}

	if cfg.CutoffTime != "" {
		d, err := ParseClock(cfg.CutoffTime)
		if err != nil {
			return nil, err
		}
		c.CutoffTime = d
	}

	return c, nil
}

// FixedZone returns a zone at a whole-hour offset from UTC. The default
// offset is named KST.
func FixedZone(hours int) *time.Location {
	if hours == DefaultUTCOffsetHours {
		return time.FixedZone("KST", hours*3600)
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600)
}

// Round returns the round on sale at now. Instants before the epoch yield 1.
func (c *Calculator) Round(now time.Time) lotto.DrawRound {
	local := now.In(c.location())

	days := civilDays(c.Epoch.In(c.location()), local)
	if days < 0 {
		return 1
	}

	r := days/7 + 2
	if local.Weekday() == c.CutoffWeekday && sinceMidnight(local) >= c.CutoffTime {
		r++
	}
	return lotto.DrawRound(r)
}

// Current returns the round on sale now.
func (c *Calculator) Current() lotto.DrawRound {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return c.Round(now())
}

func (c *Calculator) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// civilDays counts calendar days from a to b, ignoring the clock.
func civilDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

func sinceMidnight(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts English weekday names and their three-letter forms.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

// ParseClock parses "HH:MM" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid cutoff time %q, want HH:MM: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
