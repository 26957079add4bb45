package slot

import (
	"time"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusBlocked   Status = "blocked"
)

var (
	ErrNotFound      = apperror.NotFound("slot not found")
	ErrNotAvailable  = apperror.Conflict("slot is not available")
	ErrBookedBlocked = apperror.Conflict("a booked slot cannot be blocked")
	ErrDateHasSlots  = apperror.Conflict("slots already exist for this date")
	ErrPastDate      = apperror.PreconditionFailed("cannot generate slots for a past date")
)

// Slot is a half-open interval [Start, End) on a calendar date.
// At most one slot per (date, start, end), enforced by the database.
type Slot struct {
	ID     string
	Date   time.Time
	Start  clock.TimeOfDay
	End    clock.TimeOfDay
	Status Status
}

// StartAt anchors the slot's start time on its date in loc.
func (s *Slot) StartAt(loc *time.Location) time.Time {
	return clock.Combine(s.Date, s.Start, loc)
}

// EndAt anchors the slot's end time on its date in loc.
func (s *Slot) EndAt(loc *time.Location) time.Time {
	return clock.Combine(s.Date, s.End, loc)
}

// Interval is a generated (start, end) pair before persistence.
type Interval struct {
	Start clock.TimeOfDay
	End   clock.TimeOfDay
}

// BuildIntervals walks from start to end in fixed steps. The walk stops
// when a step would run past end or past 23:59, so the last interval
// never crosses midnight.
func BuildIntervals(start, end clock.TimeOfDay, intervalMin int) []Interval {
	if intervalMin <= 0 {
		return nil
	}

	var out []Interval
	for cur := start; ; cur = cur.Add(intervalMin) {
		next := cur.Add(intervalMin)
		if next > end || next > clock.EndOfDay {
			break
		}
		out = append(out, Interval{Start: cur, End: next})
	}
	return out
}
