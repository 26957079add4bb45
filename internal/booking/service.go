package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/glowbook/salon-backend/internal/catalog"
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/notify"
	"github.com/glowbook/salon-backend/internal/salon"
	"github.com/glowbook/salon-backend/internal/slot"
	"github.com/glowbook/salon-backend/internal/user"
)

const (
	defaultRemindBeforeHours = 2
	maxRemindBeforeHours     = 48
)

type CreateRequest struct {
	ClientID          string
	ServiceID         string
	SlotID            string
	RemindBeforeHours int
}

// Service is the reservation engine. All slot mutations go through a
// transaction that locks the slot row first, so concurrent attempts on
// the same slot serialize and exactly one wins.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	CancelByClient(ctx context.Context, clientID, bookingID string) (*Booking, error)
	CancelByStaff(ctx context.Context, bookingID string) (*Booking, error)
	Reschedule(ctx context.Context, bookingID, newSlotID string) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	ListMine(ctx context.Context, clientID string) ([]*Booking, error)
}

type service struct {
	repo     Repository
	slots    slot.Repository
	users    user.Repository
	catalog  catalog.CatalogService
	salon    salon.InfoService
	notifier *notify.Notifier
	clock    clock.Clock

	createCutoff time.Duration
	cancelCutoff time.Duration
}

func NewService(
	repo Repository,
	slots slot.Repository,
	users user.Repository,
	cat catalog.CatalogService,
	info salon.InfoService,
	notifier *notify.Notifier,
	clk clock.Clock,
	createCutoff, cancelCutoff time.Duration,
) Service {
	return &service{
		repo:         repo,
		slots:        slots,
		users:        users,
		catalog:      cat,
		salon:        info,
		notifier:     notifier,
		clock:        clk,
		createCutoff: createCutoff,
		cancelCutoff: cancelCutoff,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	client, err := s.users.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.ProfileComplete() {
		return nil, user.ErrProfileIncomplete
	}

	svc, err := s.catalog.GetActive(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	remind := req.RemindBeforeHours
	if remind <= 0 {
		remind = defaultRemindBeforeHours
	}
	if remind > maxRemindBeforeHours {
		remind = maxRemindBeforeHours
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin booking transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	sl, err := s.slots.GetForUpdate(ctx, tx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if sl.Status != slot.StatusAvailable {
		return nil, slot.ErrNotAvailable
	}
	if s.clock.Now().Add(s.createCutoff).After(sl.StartAt(s.clock.Location())) {
		return nil, ErrTooLateToCreate
	}

	b := &Booking{
		ClientID:          req.ClientID,
		ServiceID:         svc.ID,
		SlotID:            sl.ID,
		Status:            StatusConfirmed,
		RemindBeforeHours: remind,
	}
	if err := s.repo.CreateTx(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := s.slots.SetStatusTx(ctx, tx, sl.ID, slot.StatusBooked); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking transaction failed: %w", err)
	}

	created, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		// The reservation is committed; return what we have.
		log.Printf("booking: reload after create failed: %v", err)
		return b, nil
	}

	s.notifyCreated(ctx, created)
	return created, nil
}

func (s *service) CancelByClient(ctx context.Context, clientID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Hide other clients' bookings rather than confirming they exist.
	if b.ClientID != clientID {
		return nil, ErrNotFound
	}
	if b.Status.Terminal() {
		return nil, ErrAlreadyTerminal
	}
	if s.clock.Now().Add(s.cancelCutoff).After(b.StartAt(s.clock.Location())) {
		return nil, ErrTooLateToCancel
	}

	cancelled, err := s.cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.notifier.AdminsAsync(notify.AdminCancelledBooking(
		cancelled.ClientFirstName, cancelled.ClientUsername, cancelled.ClientPhone,
		cancelled.ServiceName, formatDate(cancelled.SlotDate), cancelled.SlotStart.String(),
	))
	return cancelled, nil
}

func (s *service) CancelByStaff(ctx context.Context, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, ErrAlreadyTerminal
	}

	cancelled, err := s.cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.notifier.ClientAsync(cancelled.ClientTelegramID, notify.ClientCancelledByStaff(
		cancelled.ServiceName, formatDate(cancelled.SlotDate), cancelled.SlotStart.String(),
	))
	return cancelled, nil
}

// cancel flips the booking to cancelled and releases the slot, locking
// both rows. A slot staff blocked after the booking stays blocked.
func (s *service) cancel(ctx context.Context, bookingID string) (*Booking, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	row, err := s.repo.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if row.Status.Terminal() {
		return nil, ErrAlreadyTerminal
	}

	sl, err := s.slots.GetForUpdate(ctx, tx, row.SlotID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatusTx(ctx, tx, bookingID, StatusCancelled); err != nil {
		return nil, err
	}
	if sl.Status == slot.StatusBooked {
		if err := s.slots.SetStatusTx(ctx, tx, sl.ID, slot.StatusAvailable); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel transaction failed: %w", err)
	}

	return s.repo.GetByID(ctx, bookingID)
}

func (s *service) Reschedule(ctx context.Context, bookingID, newSlotID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusConfirmed {
		return nil, ErrNotConfirmed
	}
	if b.SlotID == newSlotID {
		return nil, ErrSameSlot
	}

	oldDate, oldTime := formatDate(b.SlotDate), b.SlotStart.String()

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reschedule transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	row, err := s.repo.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if row.Status != StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	newSlot, err := s.slots.GetForUpdate(ctx, tx, newSlotID)
	if err != nil {
		return nil, err
	}
	if newSlot.Status != slot.StatusAvailable {
		return nil, slot.ErrNotAvailable
	}

	// A staff reschedule supersedes any block on the old slot.
	if err := s.slots.SetStatusTx(ctx, tx, row.SlotID, slot.StatusAvailable); err != nil {
		return nil, err
	}
	if err := s.slots.SetStatusTx(ctx, tx, newSlot.ID, slot.StatusBooked); err != nil {
		return nil, err
	}
	if err := s.repo.ReassignSlotTx(ctx, tx, bookingID, newSlot.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reschedule transaction failed: %w", err)
	}

	moved, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	newDate, newTime := formatDate(moved.SlotDate), moved.SlotStart.String()
	s.notifier.ClientAsync(moved.ClientTelegramID, notify.ClientRescheduled(
		moved.ServiceName, oldDate, oldTime, newDate, newTime,
	))
	s.notifier.AdminsAsync(notify.AdminRescheduled(
		moved.ClientFirstName, moved.ClientUsername, moved.ClientPhone,
		moved.ServiceName, oldDate, oldTime, newDate, newTime,
	))
	return moved, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListMine(ctx context.Context, clientID string) ([]*Booking, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) notifyCreated(ctx context.Context, b *Booking) {
	date, start := formatDate(b.SlotDate), b.SlotStart.String()

	s.notifier.AdminsAsync(notify.AdminNewBooking(
		b.ClientFirstName, b.ClientUsername, b.ClientPhone,
		b.ServiceName, date, start,
	))

	var address, preparation string
	if info, err := s.salon.Get(ctx); err == nil {
		address, preparation = info.Address, info.PreparationText
	}
	s.notifier.ClientAsync(b.ClientTelegramID, notify.ClientConfirmed(
		b.ServiceName, date, start, b.RemindBeforeHours, b.ServicePrice, address, preparation,
	))
}

func formatDate(d time.Time) string {
	return d.Format("02.01.2006")
}
