package http

import (
	"time"

	"github.com/glowbook/salon-backend/internal/booking"
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	ServiceID         string `json:"service_id" binding:"required,uuid"`
	SlotID            string `json:"slot_id" binding:"required,uuid"`
	RemindBeforeHours int    `json:"remind_before_hours" binding:"omitempty,gt=0"`
}

type RescheduleBookingRequest struct {
	SlotID string `json:"slot_id" binding:"required,uuid"`
}

type ListBookingsRequest struct {
	request.ListParams

	Date   string `form:"date"`
	Status string `form:"status"`
}

type ClientInfo struct {
	TelegramID int64  `json:"telegram_id"`
	FirstName  string `json:"first_name"`
	Username   string `json:"username"`
	Phone      string `json:"phone"`
}

type BookingResponse struct {
	ID                string          `json:"id"`
	Status            booking.Status  `json:"status"`
	ServiceID         string          `json:"service_id"`
	ServiceName       string          `json:"service_name"`
	ServicePrice      float64         `json:"service_price"`
	SlotID            string          `json:"slot_id"`
	Date              string          `json:"date"`
	StartTime         clock.TimeOfDay `json:"start_time"`
	EndTime           clock.TimeOfDay `json:"end_time"`
	RemindBeforeHours int             `json:"remind_before_hours"`
	CreatedAt         time.Time       `json:"created_at"`
	Client            *ClientInfo     `json:"client,omitempty"`
}

// NewBookingResponse renders a booking; client contact details are
// attached only for staff callers.
func NewBookingResponse(b *booking.Booking, forStaff bool) BookingResponse {
	resp := BookingResponse{
		ID:                b.ID,
		Status:            b.Status,
		ServiceID:         b.ServiceID,
		ServiceName:       b.ServiceName,
		ServicePrice:      b.ServicePrice,
		SlotID:            b.SlotID,
		Date:              b.SlotDate.Format(dateLayout),
		StartTime:         b.SlotStart,
		EndTime:           b.SlotEnd,
		RemindBeforeHours: b.RemindBeforeHours,
		CreatedAt:         b.CreatedAt,
	}
	if forStaff {
		resp.Client = &ClientInfo{
			TelegramID: b.ClientTelegramID,
			FirstName:  b.ClientFirstName,
			Username:   b.ClientUsername,
			Phone:      b.ClientPhone,
		}
	}
	return resp
}

func NewBookingListResponse(bookings []*booking.Booking, forStaff bool) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b, forStaff))
	}
	return out
}
