package booking

import (
	"time"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/apperror"
	"github.com/glowbook/salon-backend/internal/slot"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status never changes again.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

var (
	ErrNotFound        = apperror.NotFound("booking not found")
	ErrAlreadyTerminal = apperror.Conflict("booking is already cancelled or completed")
	ErrNotConfirmed    = apperror.Conflict("only a confirmed booking can be rescheduled")
	ErrSameSlot        = apperror.Conflict("booking already occupies this slot")
	ErrTooLateToCreate = apperror.PreconditionFailed("too close to the slot start to book")
	ErrTooLateToCancel = apperror.PreconditionFailed("too close to the slot start to cancel")
)

// Booking joins its client, service and slot rows, since nearly every
// caller (handlers, notifications, scheduler obligations) needs all
// three to act on it.
type Booking struct {
	ID                string
	ClientID          string
	ServiceID         string
	SlotID            string
	Status            Status
	RemindBeforeHours int
	Reminded          bool
	FeedbackSent      bool
	CreatedAt         time.Time

	ClientTelegramID int64
	ClientFirstName  string
	ClientUsername   string
	ClientPhone      string

	ServiceName        string
	ServiceDurationMin int
	ServicePrice       float64

	SlotDate   time.Time
	SlotStart  clock.TimeOfDay
	SlotEnd    clock.TimeOfDay
	SlotStatus slot.Status
}

// StartAt anchors the booked slot's start on its date in loc.
func (b *Booking) StartAt(loc *time.Location) time.Time {
	return clock.Combine(b.SlotDate, b.SlotStart, loc)
}

// ServiceEndAt is the instant the service runs out, which may differ
// from the slot's end when the service duration exceeds the slot.
func (b *Booking) ServiceEndAt(loc *time.Location) time.Time {
	return b.StartAt(loc).Add(time.Duration(b.ServiceDurationMin) * time.Minute)
}

// SlotEndAt anchors the booked slot's end on its date in loc.
func (b *Booking) SlotEndAt(loc *time.Location) time.Time {
	return clock.Combine(b.SlotDate, b.SlotEnd, loc)
}

// ClientName picks the friendliest available identifier for texts.
func (b *Booking) ClientName() string {
	if b.ClientFirstName != "" {
		return b.ClientFirstName
	}
	return b.ClientUsername
}
