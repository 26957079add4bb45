package scheduler

import (
	"context"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/notify"
)

// runSummary sends staff the day's schedule once, inside the morning
// window. The guard is committed only after the send attempt, so a
// crash mid-send retries on the next tick.
func (s *Scheduler) runSummary(ctx context.Context) error {
	now := s.clock.Now()
	if !inWindow(now, s.cfg.SummaryHour) {
		return nil
	}
	day := now.Format(dayLayout)
	if s.summaryGuard.Ran(day) {
		return nil
	}

	bookings, err := s.bookings.ListConfirmedByDate(ctx, clock.DateOf(now))
	if err != nil {
		return err
	}

	entries := make([]string, len(bookings))
	for i, b := range bookings {
		entries[i] = notify.SummaryEntry(i+1, b.SlotStart.String(), b.ClientName(), b.ServiceName)
	}

	for _, page := range notify.SummaryPages(now.Format("02.01.2006"), entries) {
		s.notifier.AdminsNow(ctx, page)
	}

	s.summaryGuard.MarkDone(day)
	return nil
}
