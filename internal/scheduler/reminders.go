package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/glowbook/salon-backend/internal/booking"
	"github.com/glowbook/salon-backend/internal/notify"
)

// runReminders sends upcoming-visit reminders. The batch is marked
// reminded before any delivery is attempted: a crash in between costs a
// reminder, never a duplicate.
func (s *Scheduler) runReminders(ctx context.Context) error {
	now := s.clock.Now()
	loc := s.clock.Location()

	pending, err := s.bookings.ListConfirmedUnreminded(ctx)
	if err != nil {
		return err
	}

	var due []*booking.Booking
	for _, b := range pending {
		until := b.StartAt(loc).Sub(now)
		lead := time.Duration(b.RemindBeforeHours) * time.Hour
		if until > 0 && until <= lead {
			due = append(due, b)
		}
	}
	if len(due) == 0 {
		return nil
	}

	ids := make([]string, len(due))
	for i, b := range due {
		ids[i] = b.ID
	}
	if err := s.bookings.MarkReminded(ctx, ids); err != nil {
		return err
	}

	var address string
	if info, err := s.salon.Get(ctx); err == nil {
		address = info.Address
	}
	for _, b := range due {
		text := notify.Reminder(b.ServiceName, b.SlotStart.String(), address)
		if err := s.notifier.SendNow(ctx, b.ClientTelegramID, text); err != nil {
			log.Printf("scheduler: reminder for booking %s failed: %v", b.ID, err)
		}
	}
	return nil
}
