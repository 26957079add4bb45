package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/glowbook/salon-backend/internal/booking"
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/notify"
	"github.com/glowbook/salon-backend/internal/salon"
	"github.com/glowbook/salon-backend/internal/slot"
	"github.com/glowbook/salon-backend/internal/template"
)

type Config struct {
	TickInterval      time.Duration
	SummaryHour       int
	AutogenHour       int
	LookbackDays      int
	GenerateDaysAhead int
	FeedbackDelay     time.Duration
}

const dayLayout = "2006-01-02"

// Scheduler runs the five recurring obligations on a fixed tick:
// reminders, the morning summary, auto-completion, slot generation and
// post-session feedback. Each obligation runs in its own goroutine per
// tick, so a slow or failing one never holds up the rest.
type Scheduler struct {
	cfg       Config
	bookings  booking.Repository
	slots     slot.Repository
	templates template.Repository
	salon     salon.InfoService
	notifier  *notify.Notifier
	clock     clock.Clock

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc

	summaryGuard  dayGuard
	generateGuard dayGuard
}

func New(
	cfg Config,
	bookings booking.Repository,
	slots slot.Repository,
	templates template.Repository,
	info salon.InfoService,
	notifier *notify.Notifier,
	clk clock.Clock,
) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cfg:       cfg,
		bookings:  bookings,
		slots:     slots,
		templates: templates,
		salon:     info,
		notifier:  notifier,
		clock:     clk,
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start preseeds the daily guards and begins ticking.
func (s *Scheduler) Start() error {
	s.preseedGuards()

	spec := "@every " + s.cfg.TickInterval.String()
	jobs := []struct {
		name string
		run  func(context.Context) error
	}{
		{"reminders", s.runReminders},
		{"summary", s.runSummary},
		{"autocomplete", s.runAutoComplete},
		{"generate", s.runGenerate},
		{"feedback", s.runFeedback},
	}
	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(spec, func() {
			if err := j.run(s.ctx); err != nil {
				log.Printf("scheduler: %s failed: %v", j.name, err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.Printf("scheduler: started, tick %s", s.cfg.TickInterval)
	return nil
}

// preseedGuards marks today done for any daily obligation whose window
// already passed, so a restart later in the day never re-fires it.
func (s *Scheduler) preseedGuards() {
	now := s.clock.Now()
	day := now.Format(dayLayout)
	if pastWindow(now, s.cfg.SummaryHour) {
		s.summaryGuard.MarkDone(day)
	}
	if pastWindow(now, s.cfg.AutogenHour) {
		s.generateGuard.MarkDone(day)
	}
}

// inWindow reports whether now falls inside the one-minute daily
// window starting at hour:00.
func inWindow(now time.Time, hour int) bool {
	return now.Hour() == hour && now.Minute() == 0
}

func pastWindow(now time.Time, hour int) bool {
	return now.Hour() > hour || (now.Hour() == hour && now.Minute() >= 1)
}

// Stop cancels in-flight obligations and waits up to grace for the
// running jobs to finish.
func (s *Scheduler) Stop(grace time.Duration) {
	s.cancel()
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(grace):
		log.Printf("scheduler: grace period expired, abandoning running jobs")
	}
}
