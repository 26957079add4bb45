package db

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/glowbook/salon-backend/internal/clock"
)

// TimeOfDay converts a pgtype.Time scanned from a TIME column into the
// domain minutes-of-day representation.
func TimeOfDay(t pgtype.Time) clock.TimeOfDay {
	return clock.TimeOfDay(t.Microseconds / 60_000_000)
}

// PgTime converts a TimeOfDay into a pgtype.Time for binding to a TIME
// column parameter.
func PgTime(t clock.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * 60_000_000, Valid: true}
}
