package template

import (
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.NotFound("schedule template not found")
	ErrDuplicate = apperror.Conflict("a template for this weekday already exists")
)

// Template is a per-weekday slot generation rule. Weekdays are
// Monday-based (0 = Monday) to match the business week.
type Template struct {
	ID              string
	DayOfWeek       int
	Start           clock.TimeOfDay
	End             clock.TimeOfDay
	IntervalMinutes int
	IsActive        bool
}
