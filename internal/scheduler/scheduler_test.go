package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-backend/internal/booking"
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/notify"
	"github.com/glowbook/salon-backend/internal/salon"
	"github.com/glowbook/salon-backend/internal/slot"
	"github.com/glowbook/salon-backend/internal/template"
)

type sentMessage struct {
	chatID int64
	text   string
}

type recordingGateway struct {
	mu   sync.Mutex
	sent []sentMessage
	fail bool
}

func (g *recordingGateway) Send(_ context.Context, chatID int64, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return errors.New("telegram unreachable")
	}
	g.sent = append(g.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (g *recordingGateway) messages() []sentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]sentMessage(nil), g.sent...)
}

type fakeBookings struct {
	booking.Repository

	items map[string]*booking.Booking
}

func (f *fakeBookings) ListConfirmedUnreminded(context.Context) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range f.items {
		if b.Status == booking.StatusConfirmed && !b.Reminded {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) MarkReminded(_ context.Context, ids []string) error {
	for _, id := range ids {
		f.items[id].Reminded = true
	}
	return nil
}

func (f *fakeBookings) ListConfirmedByDate(_ context.Context, date time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range f.items {
		if b.Status == booking.StatusConfirmed && clock.SameDate(b.SlotDate, date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) ListConfirmedInRange(_ context.Context, from, to time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range f.items {
		if b.Status == booking.StatusConfirmed && !b.SlotDate.Before(from) && !b.SlotDate.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) CompleteBatch(_ context.Context, ids []string) error {
	for _, id := range ids {
		if f.items[id].Status == booking.StatusConfirmed {
			f.items[id].Status = booking.StatusCompleted
		}
	}
	return nil
}

func (f *fakeBookings) ListCompletedFeedbackPending(_ context.Context, from, to time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range f.items {
		if b.Status == booking.StatusCompleted && !b.FeedbackSent &&
			!b.SlotDate.Before(from) && !b.SlotDate.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) MarkFeedbackSent(_ context.Context, id string) error {
	f.items[id].FeedbackSent = true
	return nil
}

type fakeSlots struct {
	slot.Repository

	existing map[string]bool
	created  map[string][]slot.Interval
}

func (f *fakeSlots) ExistsOnDate(_ context.Context, date time.Time) (bool, error) {
	key := date.Format(dayLayout)
	return f.existing[key] || len(f.created[key]) > 0, nil
}

func (f *fakeSlots) CreateBatch(_ context.Context, date time.Time, intervals []slot.Interval) (int, error) {
	key := date.Format(dayLayout)
	f.created[key] = append(f.created[key], intervals...)
	return len(intervals), nil
}

type fakeTemplates struct {
	template.Repository

	byWeekday map[int]*template.Template
}

func (f *fakeTemplates) GetActiveByWeekday(_ context.Context, dayOfWeek int) (*template.Template, error) {
	t, ok := f.byWeekday[dayOfWeek]
	if !ok {
		return nil, template.ErrNotFound
	}
	return t, nil
}

type fakeSalon struct {
	salon.InfoService
}

func (fakeSalon) Get(context.Context) (*salon.Info, error) {
	return &salon.Info{Address: "Main St 1"}, nil
}

type fixture struct {
	sched    *Scheduler
	bookings *fakeBookings
	slots    *fakeSlots
	gateway  *recordingGateway
}

func newFixture(t *testing.T, now time.Time, templates map[int]*template.Template) *fixture {
	t.Helper()

	gateway := &recordingGateway{}
	notifier := notify.NewNotifier(gateway, []int64{1}, time.Second)
	t.Cleanup(notifier.Close)

	bookings := &fakeBookings{items: make(map[string]*booking.Booking)}
	slots := &fakeSlots{existing: make(map[string]bool), created: make(map[string][]slot.Interval)}

	cfg := Config{
		TickInterval:      time.Minute,
		SummaryHour:       8,
		AutogenHour:       7,
		LookbackDays:      7,
		GenerateDaysAhead: 14,
		FeedbackDelay:     time.Hour,
	}
	sched := New(cfg, bookings, slots, &fakeTemplates{byWeekday: templates}, fakeSalon{},
		notifier, clock.Fixed{T: now})
	return &fixture{sched: sched, bookings: bookings, slots: slots, gateway: gateway}
}

func confirmedBooking(id string, date time.Time, start, end string, chatID int64, lead int) *booking.Booking {
	return &booking.Booking{
		ID:                 id,
		Status:             booking.StatusConfirmed,
		RemindBeforeHours:  lead,
		ClientTelegramID:   chatID,
		ClientFirstName:    "Alice",
		ServiceName:        "Manicure",
		ServiceDurationMin: 20,
		SlotDate:           date,
		SlotStart:          clock.MustParseTimeOfDay(start),
		SlotEnd:            clock.MustParseTimeOfDay(end),
	}
}

func TestRemindersFireWithinLead(t *testing.T) {
	now := time.Date(2026, 12, 25, 8, 30, 0, 0, time.UTC)
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now, nil)

	// 90 minutes out with a 2-hour lead: due.
	f.bookings.items["due"] = confirmedBooking("due", date, "10:00", "10:20", 100, 2)
	// 5 hours out with a 2-hour lead: not yet.
	f.bookings.items["early"] = confirmedBooking("early", date, "13:30", "13:50", 200, 2)
	// Already started: never remind after the fact.
	f.bookings.items["past"] = confirmedBooking("past", date, "08:00", "08:20", 300, 2)

	require.NoError(t, f.sched.runReminders(context.Background()))

	msgs := f.gateway.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(100), msgs[0].chatID)
	assert.True(t, f.bookings.items["due"].Reminded)
	assert.False(t, f.bookings.items["early"].Reminded)
	assert.False(t, f.bookings.items["past"].Reminded)
}

func TestRemindersNeverRepeat(t *testing.T) {
	now := time.Date(2026, 12, 25, 8, 30, 0, 0, time.UTC)
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now, nil)
	f.bookings.items["due"] = confirmedBooking("due", date, "10:00", "10:20", 100, 2)

	require.NoError(t, f.sched.runReminders(context.Background()))
	require.NoError(t, f.sched.runReminders(context.Background()))

	assert.Len(t, f.gateway.messages(), 1)
}

func TestRemindersMarkBeforeSend(t *testing.T) {
	now := time.Date(2026, 12, 25, 8, 30, 0, 0, time.UTC)
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now, nil)
	f.bookings.items["due"] = confirmedBooking("due", date, "10:00", "10:20", 100, 2)
	f.gateway.fail = true

	require.NoError(t, f.sched.runReminders(context.Background()))

	// Delivery failed but the flag is committed: no duplicate later.
	assert.True(t, f.bookings.items["due"].Reminded)
	f.gateway.fail = false
	require.NoError(t, f.sched.runReminders(context.Background()))
	assert.Empty(t, f.gateway.messages())
}

func TestSummaryOnlyInWindow(t *testing.T) {
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)

	outside := newFixture(t, time.Date(2026, 12, 25, 9, 15, 0, 0, time.UTC), nil)
	outside.bookings.items["b1"] = confirmedBooking("b1", date, "10:00", "10:20", 100, 2)
	require.NoError(t, outside.sched.runSummary(context.Background()))
	assert.Empty(t, outside.gateway.messages())

	inside := newFixture(t, time.Date(2026, 12, 25, 8, 0, 30, 0, time.UTC), nil)
	inside.bookings.items["b1"] = confirmedBooking("b1", date, "10:00", "10:20", 100, 2)
	require.NoError(t, inside.sched.runSummary(context.Background()))

	msgs := inside.gateway.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(1), msgs[0].chatID)
	assert.Contains(t, msgs[0].text, "10:00")
}

func TestSummarySentOncePerDay(t *testing.T) {
	now := time.Date(2026, 12, 25, 8, 0, 30, 0, time.UTC)
	f := newFixture(t, now, nil)

	require.NoError(t, f.sched.runSummary(context.Background()))
	require.NoError(t, f.sched.runSummary(context.Background()))

	assert.Len(t, f.gateway.messages(), 1)
}

func TestGuardPreseededAfterWindow(t *testing.T) {
	// Process starts at 09:30, after both daily windows. Neither daily
	// obligation may fire again today even if the clock were inside the
	// window on a later tick.
	now := time.Date(2026, 12, 25, 9, 30, 0, 0, time.UTC)
	f := newFixture(t, now, nil)
	f.sched.preseedGuards()

	day := now.Format(dayLayout)
	assert.True(t, f.sched.summaryGuard.Ran(day))
	assert.True(t, f.sched.generateGuard.Ran(day))
}

func TestGuardNotPreseededBeforeWindow(t *testing.T) {
	now := time.Date(2026, 12, 25, 6, 30, 0, 0, time.UTC)
	f := newFixture(t, now, nil)
	f.sched.preseedGuards()

	day := now.Format(dayLayout)
	assert.False(t, f.sched.summaryGuard.Ran(day))
	assert.False(t, f.sched.generateGuard.Ran(day))
}

func TestAutoComplete(t *testing.T) {
	now := time.Date(2026, 12, 25, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now, nil)

	// Service ended at 10:20, well past.
	f.bookings.items["done"] = confirmedBooking("done", date, "10:00", "10:20", 100, 2)
	// Still in progress at noon.
	f.bookings.items["running"] = confirmedBooking("running", date, "11:50", "12:10", 200, 2)
	// Outside the lookback window entirely.
	old := confirmedBooking("old", date.AddDate(0, 0, -30), "10:00", "10:20", 300, 2)
	f.bookings.items["old"] = old

	require.NoError(t, f.sched.runAutoComplete(context.Background()))

	assert.Equal(t, booking.StatusCompleted, f.bookings.items["done"].Status)
	assert.Equal(t, booking.StatusConfirmed, f.bookings.items["running"].Status)
	assert.Equal(t, booking.StatusConfirmed, old.Status)

	// Re-running changes nothing.
	require.NoError(t, f.sched.runAutoComplete(context.Background()))
	assert.Equal(t, booking.StatusCompleted, f.bookings.items["done"].Status)
}

func TestGenerateSlotsFromTemplate(t *testing.T) {
	// 2026-12-25 is a Friday (Monday-based weekday 4).
	now := time.Date(2026, 12, 25, 7, 0, 30, 0, time.UTC)
	templates := map[int]*template.Template{
		4: {
			DayOfWeek:       4,
			Start:           clock.MustParseTimeOfDay("09:00"),
			End:             clock.MustParseTimeOfDay("16:00"),
			IntervalMinutes: 30,
			IsActive:        true,
		},
	}
	f := newFixture(t, now, templates)

	require.NoError(t, f.sched.runGenerate(context.Background()))

	// Two Fridays fall inside the 14-day horizon.
	assert.Len(t, f.slots.created["2026-12-25"], 14)
	assert.Len(t, f.slots.created["2027-01-01"], 14)
	assert.Len(t, f.slots.created, 2)
}

func TestGenerateSkipsExistingDates(t *testing.T) {
	now := time.Date(2026, 12, 25, 7, 0, 30, 0, time.UTC)
	templates := map[int]*template.Template{
		4: {
			DayOfWeek:       4,
			Start:           clock.MustParseTimeOfDay("09:00"),
			End:             clock.MustParseTimeOfDay("16:00"),
			IntervalMinutes: 30,
			IsActive:        true,
		},
	}
	f := newFixture(t, now, templates)
	f.slots.existing["2026-12-25"] = true

	require.NoError(t, f.sched.runGenerate(context.Background()))

	assert.Empty(t, f.slots.created["2026-12-25"])
	assert.Len(t, f.slots.created["2027-01-01"], 14)
}

func TestGenerateOncePerDay(t *testing.T) {
	now := time.Date(2026, 12, 25, 7, 0, 30, 0, time.UTC)
	templates := map[int]*template.Template{
		4: {
			DayOfWeek:       4,
			Start:           clock.MustParseTimeOfDay("09:00"),
			End:             clock.MustParseTimeOfDay("16:00"),
			IntervalMinutes: 30,
			IsActive:        true,
		},
	}
	f := newFixture(t, now, templates)

	require.NoError(t, f.sched.runGenerate(context.Background()))
	require.NoError(t, f.sched.runGenerate(context.Background()))

	assert.Len(t, f.slots.created["2026-12-25"], 14)
}

func TestFeedbackSendThenMark(t *testing.T) {
	now := time.Date(2026, 12, 25, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now, nil)

	b := confirmedBooking("b1", date, "10:00", "10:20", 100, 2)
	b.Status = booking.StatusCompleted
	f.bookings.items["b1"] = b

	f.gateway.fail = true
	require.NoError(t, f.sched.runFeedback(context.Background()))
	// Failed delivery stays eligible for retry.
	assert.False(t, b.FeedbackSent)

	f.gateway.fail = false
	require.NoError(t, f.sched.runFeedback(context.Background()))
	assert.True(t, b.FeedbackSent)

	msgs := f.gateway.messages()
	require.Len(t, msgs, 1)
	assert.True(t, strings.Contains(msgs[0].text, "Manicure"))

	// Marked means never sent again.
	require.NoError(t, f.sched.runFeedback(context.Background()))
	assert.Len(t, f.gateway.messages(), 1)
}

func TestFeedbackRespectsDelay(t *testing.T) {
	// Slot ended 10:20; only one hour later is the ask due.
	now := time.Date(2026, 12, 25, 11, 0, 0, 0, time.UTC)
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now, nil)

	b := confirmedBooking("b1", date, "10:00", "10:20", 100, 2)
	b.Status = booking.StatusCompleted
	f.bookings.items["b1"] = b

	require.NoError(t, f.sched.runFeedback(context.Background()))
	assert.False(t, b.FeedbackSent)
	assert.Empty(t, f.gateway.messages())
}
