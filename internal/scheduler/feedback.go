package scheduler

import (
	"context"
	"log"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/notify"
)

// runFeedback asks completed clients how their visit went, a fixed
// delay after the slot ended. Send-then-mark: the flag is committed
// only on a successful delivery, so a failed send retries on later
// ticks for as long as the booking stays inside the lookback window.
func (s *Scheduler) runFeedback(ctx context.Context) error {
	now := s.clock.Now()
	loc := s.clock.Location()
	today := clock.DateOf(now)
	from := today.AddDate(0, 0, -s.cfg.LookbackDays)

	bookings, err := s.bookings.ListCompletedFeedbackPending(ctx, from, today)
	if err != nil {
		return err
	}

	for _, b := range bookings {
		if now.Before(b.SlotEndAt(loc).Add(s.cfg.FeedbackDelay)) {
			continue
		}
		if err := s.notifier.SendNow(ctx, b.ClientTelegramID, notify.PostSession(b.ServiceName)); err != nil {
			log.Printf("scheduler: feedback for booking %s failed: %v", b.ID, err)
			continue
		}
		if err := s.bookings.MarkFeedbackSent(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}
