package scheduler

import (
	"context"
	"errors"
	"log"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/slot"
	"github.com/glowbook/salon-backend/internal/template"
)

// runGenerate materializes slots from weekday templates for the days
// ahead, once per day. Dates that already have any slots are skipped
// wholesale, so a re-run never duplicates or regenerates.
func (s *Scheduler) runGenerate(ctx context.Context) error {
	now := s.clock.Now()
	if !inWindow(now, s.cfg.AutogenHour) {
		return nil
	}
	day := now.Format(dayLayout)
	if s.generateGuard.Ran(day) {
		return nil
	}

	today := clock.DateOf(now)
	created := 0
	for i := 0; i < s.cfg.GenerateDaysAhead; i++ {
		date := today.AddDate(0, 0, i)

		tmpl, err := s.templates.GetActiveByWeekday(ctx, clock.Weekday(date))
		if err != nil {
			if errors.Is(err, template.ErrNotFound) {
				continue
			}
			return err
		}

		exists, err := s.slots.ExistsOnDate(ctx, date)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		intervals := slot.BuildIntervals(tmpl.Start, tmpl.End, tmpl.IntervalMinutes)
		n, err := s.slots.CreateBatch(ctx, date, intervals)
		if err != nil {
			return err
		}
		created += n
	}

	s.generateGuard.MarkDone(day)
	if created > 0 {
		log.Printf("scheduler: generated %d slots", created)
	}
	return nil
}
