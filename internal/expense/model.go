package expense

import (
	"regexp"
	"time"

	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("expense not found")
	ErrInvalidMonth = apperror.BadRequest("month must be formatted as YYYY-MM")
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonth reports whether s is a calendar month key like "2026-08".
func ValidMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// Expense is a staff-recorded operating cost, grouped by month for
// simple bookkeeping.
type Expense struct {
	ID        string
	Name      string
	Amount    float64
	Month     string
	CreatedAt time.Time
}
