package clock

import (
	"fmt"
	"time"
)

// DefaultTimezone is the salon's civil timezone. All slot times, cutoffs
// and scheduler windows are interpreted in this zone.
const DefaultTimezone = "Europe/Minsk"

// Clock supplies the current civil time in the business timezone.
// Injected so time-window logic can be tested against a frozen clock.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Business is the production Clock backed by a fixed IANA location.
type Business struct {
	loc *time.Location
}

// NewBusiness loads the given IANA timezone, falling back to
// DefaultTimezone when tz is empty.
func NewBusiness(tz string) (*Business, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return &Business{loc: loc}, nil
}

func (b *Business) Now() time.Time           { return time.Now().In(b.loc) }
func (b *Business) Location() *time.Location { return b.loc }

// Today returns midnight of the current date in the business timezone.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// DateOf strips the clock part of t, keeping its calendar date and location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Combine builds the absolute instant of a time of day on a calendar date,
// in the given location.
func Combine(date time.Time, t TimeOfDay, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
}

// Weekday maps time.Weekday to the Monday-based 0..6 numbering used by
// schedule templates.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time           { return f.T }
func (f Fixed) Location() *time.Location { return f.T.Location() }
