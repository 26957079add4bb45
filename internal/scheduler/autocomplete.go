package scheduler

import (
	"context"
	"log"

	"github.com/glowbook/salon-backend/internal/clock"
)

// runAutoComplete flips confirmed bookings to completed once the
// service has run out. The scan is bounded to a lookback window so old
// rows stop being visited. Re-running is a no-op: the batch update
// skips anything no longer confirmed.
func (s *Scheduler) runAutoComplete(ctx context.Context) error {
	now := s.clock.Now()
	loc := s.clock.Location()
	today := clock.DateOf(now)
	from := today.AddDate(0, 0, -s.cfg.LookbackDays)

	bookings, err := s.bookings.ListConfirmedInRange(ctx, from, today)
	if err != nil {
		return err
	}

	var ids []string
	for _, b := range bookings {
		if !b.ServiceEndAt(loc).After(now) {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.bookings.CompleteBatch(ctx, ids); err != nil {
		return err
	}
	log.Printf("scheduler: auto-completed %d bookings", len(ids))
	return nil
}
