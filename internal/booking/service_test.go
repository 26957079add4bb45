package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-backend/internal/catalog"
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/notify"
	"github.com/glowbook/salon-backend/internal/salon"
	"github.com/glowbook/salon-backend/internal/slot"
	"github.com/glowbook/salon-backend/internal/user"
)

// fakeStore backs both the booking and slot repositories with maps. Its
// Begin serializes transactions on a mutex, standing in for the row
// lock the real repositories take with FOR UPDATE.
type fakeStore struct {
	Repository

	mu       sync.Mutex
	slots    map[string]*slot.Slot
	bookings map[string]*bookingRow
	nextID   int
}

type bookingRow struct {
	id                string
	clientID          string
	serviceID         string
	slotID            string
	status            Status
	remindBeforeHours int
	reminded          bool
}

type fakeTx struct {
	pgx.Tx

	store *fakeStore
	done  bool
}

func (t *fakeTx) Commit(context.Context) error {
	if !t.done {
		t.done = true
		t.store.mu.Unlock()
	}
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.done {
		t.done = true
		t.store.mu.Unlock()
	}
	return nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    make(map[string]*slot.Slot),
		bookings: make(map[string]*bookingRow),
	}
}

func (s *fakeStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	return &fakeTx{store: s}, nil
}

func (s *fakeStore) CreateTx(_ context.Context, _ pgx.Tx, b *Booking) error {
	for _, row := range s.bookings {
		if row.slotID == b.SlotID {
			return slot.ErrNotAvailable
		}
	}
	s.nextID++
	b.ID = string(rune('a' + s.nextID))
	b.CreatedAt = time.Now()
	s.bookings[b.ID] = &bookingRow{
		id:                b.ID,
		clientID:          b.ClientID,
		serviceID:         b.ServiceID,
		slotID:            b.SlotID,
		status:            b.Status,
		remindBeforeHours: b.RemindBeforeHours,
	}
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	sl := s.slots[row.slotID]
	return &Booking{
		ID:                row.id,
		ClientID:          row.clientID,
		ServiceID:         row.serviceID,
		SlotID:            row.slotID,
		Status:            row.status,
		RemindBeforeHours: row.remindBeforeHours,
		Reminded:          row.reminded,
		ClientTelegramID:  100,
		ClientFirstName:   "Alice",
		ClientPhone:       "+375291112233",
		ServiceName:       "Manicure",
		ServicePrice:      50,
		SlotDate:          sl.Date,
		SlotStart:         sl.Start,
		SlotEnd:           sl.End,
		SlotStatus:        sl.Status,
	}, nil
}

func (s *fakeStore) GetForUpdateTx(_ context.Context, _ pgx.Tx, id string) (*Row, error) {
	row, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Row{ID: row.id, ClientID: row.clientID, SlotID: row.slotID, Status: row.status}, nil
}

func (s *fakeStore) UpdateStatusTx(_ context.Context, _ pgx.Tx, id string, status Status) error {
	row, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	row.status = status
	return nil
}

func (s *fakeStore) ReassignSlotTx(_ context.Context, _ pgx.Tx, id, slotID string) error {
	row, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	row.slotID = slotID
	row.reminded = false
	return nil
}

// fakeSlots implements the slot repository against the shared store.
type fakeSlots struct {
	slot.Repository

	store *fakeStore
}

func (f *fakeSlots) GetForUpdate(_ context.Context, _ pgx.Tx, id string) (*slot.Slot, error) {
	sl, ok := f.store.slots[id]
	if !ok {
		return nil, slot.ErrNotFound
	}
	cp := *sl
	return &cp, nil
}

func (f *fakeSlots) SetStatusTx(_ context.Context, _ pgx.Tx, id string, status slot.Status) error {
	sl, ok := f.store.slots[id]
	if !ok {
		return slot.ErrNotFound
	}
	sl.Status = status
	return nil
}

type fakeUsers struct {
	user.Repository

	users map[string]*user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fakeCatalog struct {
	catalog.CatalogService

	services map[string]*catalog.Service
}

func (f *fakeCatalog) GetActive(_ context.Context, id string) (*catalog.Service, error) {
	svc, ok := f.services[id]
	if !ok || !svc.IsActive {
		return nil, catalog.ErrNotFound
	}
	return svc, nil
}

type fakeSalon struct {
	salon.InfoService
}

func (fakeSalon) Get(context.Context) (*salon.Info, error) {
	return &salon.Info{Address: "Main St 1"}, nil
}

type fixture struct {
	store   *fakeStore
	service Service
	clock   clock.Fixed
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	store := newFakeStore()
	store.slots["slot-1"] = &slot.Slot{
		ID:     "slot-1",
		Date:   time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
		Start:  clock.MustParseTimeOfDay("10:00"),
		End:    clock.MustParseTimeOfDay("10:20"),
		Status: slot.StatusAvailable,
	}
	store.slots["slot-2"] = &slot.Slot{
		ID:     "slot-2",
		Date:   time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
		Start:  clock.MustParseTimeOfDay("11:00"),
		End:    clock.MustParseTimeOfDay("11:20"),
		Status: slot.StatusAvailable,
	}

	users := &fakeUsers{users: map[string]*user.User{
		"client-1": {ID: "client-1", TelegramID: 100, FirstName: "Alice", Phone: "+375291112233", ConsentGiven: true},
		"client-2": {ID: "client-2", TelegramID: 200, FirstName: "Bob", Phone: "+375294445566", ConsentGiven: true},
		"client-3": {ID: "client-3", TelegramID: 300, FirstName: "Carol"},
	}}
	services := &fakeCatalog{services: map[string]*catalog.Service{
		"svc-1": {ID: "svc-1", Name: "Manicure", DurationMinutes: 20, Price: 50, IsActive: true},
	}}

	notifier := notify.NewNotifier(notify.LogGateway{}, nil, time.Second)
	t.Cleanup(notifier.Close)

	clk := clock.Fixed{T: now}
	svc := NewService(
		store, &fakeSlots{store: store}, users, services, fakeSalon{},
		notifier, clk, time.Hour, 10*time.Hour,
	)
	return &fixture{store: store, service: svc, clock: clk}
}

func noonBefore() time.Time {
	// 2026-12-24 12:00 UTC, 22 hours before slot-1 starts.
	return time.Date(2026, 12, 24, 12, 0, 0, 0, time.UTC)
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, defaultRemindBeforeHours, b.RemindBeforeHours)
	assert.Equal(t, slot.StatusBooked, f.store.slots["slot-1"].Status)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	f := newFixture(t, noonBefore())

	_, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-2", ServiceID: "svc-1", SlotID: "slot-1",
	})
	assert.ErrorIs(t, err, slot.ErrNotAvailable)
}

func TestCreateBookingConcurrent(t *testing.T) {
	f := newFixture(t, noonBefore())

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Create(context.Background(), CreateRequest{
				ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won, conflicted int
	for err := range errs {
		if err == nil {
			won++
		} else if assert.ErrorIs(t, err, slot.ErrNotAvailable) {
			conflicted++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, conflicted)
	assert.Equal(t, slot.StatusBooked, f.store.slots["slot-1"].Status)
}

func TestCreateBookingIncompleteProfile(t *testing.T) {
	f := newFixture(t, noonBefore())

	_, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-3", ServiceID: "svc-1", SlotID: "slot-1",
	})
	assert.ErrorIs(t, err, user.ErrProfileIncomplete)
}

func TestCreateBookingCutoff(t *testing.T) {
	// 09:30 on the slot's day, 30 minutes before start, under the
	// one-hour creation cutoff.
	f := newFixture(t, time.Date(2026, 12, 25, 9, 30, 0, 0, time.UTC))

	_, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	assert.ErrorIs(t, err, ErrTooLateToCreate)
	assert.Equal(t, slot.StatusAvailable, f.store.slots["slot-1"].Status)
}

func TestCancelByClientReleasesSlot(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	cancelled, err := f.service.CancelByClient(context.Background(), "client-1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, slot.StatusAvailable, f.store.slots["slot-1"].Status)
}

func TestCancelKeepsBlockedSlotBlocked(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	// Staff blocked the slot independently after the booking.
	f.store.slots["slot-1"].Status = slot.StatusBlocked

	cancelled, err := f.service.CancelByStaff(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, slot.StatusBlocked, f.store.slots["slot-1"].Status)
}

func TestCancelByClientCutoff(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	// 09:30 on the slot's day: 30 minutes of notice against a 10-hour
	// cutoff. The client is refused, staff are not.
	late := newFixtureAt(t, f, time.Date(2026, 12, 25, 9, 30, 0, 0, time.UTC))

	_, err = late.CancelByClient(context.Background(), "client-1", b.ID)
	assert.ErrorIs(t, err, ErrTooLateToCancel)

	cancelled, err := late.CancelByStaff(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
}

// newFixtureAt rebuilds the service around the same store at a
// different instant.
func newFixtureAt(t *testing.T, f *fixture, now time.Time) Service {
	t.Helper()

	users := &fakeUsers{users: map[string]*user.User{
		"client-1": {ID: "client-1", TelegramID: 100, FirstName: "Alice", Phone: "+375291112233", ConsentGiven: true},
	}}
	services := &fakeCatalog{services: map[string]*catalog.Service{
		"svc-1": {ID: "svc-1", Name: "Manicure", DurationMinutes: 20, Price: 50, IsActive: true},
	}}
	notifier := notify.NewNotifier(notify.LogGateway{}, nil, time.Second)
	t.Cleanup(notifier.Close)

	return NewService(
		f.store, &fakeSlots{store: f.store}, users, services, fakeSalon{},
		notifier, clock.Fixed{T: now}, time.Hour, 10*time.Hour,
	)
}

func TestCancelByClientNotOwner(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	_, err = f.service.CancelByClient(context.Background(), "client-2", b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelTerminalBooking(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	_, err = f.service.CancelByStaff(context.Background(), b.ID)
	require.NoError(t, err)

	_, err = f.service.CancelByStaff(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestReschedule(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	// Simulate a reminder having already fired.
	f.store.bookings[b.ID].reminded = true

	moved, err := f.service.Reschedule(context.Background(), b.ID, "slot-2")
	require.NoError(t, err)

	assert.Equal(t, "slot-2", moved.SlotID)
	assert.False(t, moved.Reminded)
	assert.Equal(t, slot.StatusAvailable, f.store.slots["slot-1"].Status)
	assert.Equal(t, slot.StatusBooked, f.store.slots["slot-2"].Status)
}

func TestRescheduleSameSlot(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	_, err = f.service.Reschedule(context.Background(), b.ID, "slot-1")
	assert.ErrorIs(t, err, ErrSameSlot)
}

func TestRescheduleTerminalBooking(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	_, err = f.service.CancelByStaff(context.Background(), b.ID)
	require.NoError(t, err)

	_, err = f.service.Reschedule(context.Background(), b.ID, "slot-2")
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestRescheduleToUnavailableSlot(t *testing.T) {
	f := newFixture(t, noonBefore())

	b, err := f.service.Create(context.Background(), CreateRequest{
		ClientID: "client-1", ServiceID: "svc-1", SlotID: "slot-1",
	})
	require.NoError(t, err)

	f.store.slots["slot-2"].Status = slot.StatusBlocked

	_, err = f.service.Reschedule(context.Background(), b.ID, "slot-2")
	assert.ErrorIs(t, err, slot.ErrNotAvailable)
}
