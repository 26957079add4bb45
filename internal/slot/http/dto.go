package http

import (
	"time"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/slot"
)

const dateLayout = "2006-01-02"

type ListSlotsRequest struct {
	Date string `form:"date" binding:"required"`
	All  bool   `form:"all"`
}

type GenerateSlotsRequest struct {
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required,gt=0"`
}

type GenerateSlotsResponse struct {
	Created int `json:"created"`
}

type SlotResponse struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	StartTime clock.TimeOfDay `json:"start_time"`
	EndTime   clock.TimeOfDay `json:"end_time"`
	Status    slot.Status     `json:"status"`
}

func NewSlotResponse(s *slot.Slot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		Date:      s.Date.Format(dateLayout),
		StartTime: s.Start,
		EndTime:   s.End,
		Status:    s.Status,
	}
}

func NewSlotListResponse(slots []*slot.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, NewSlotResponse(s))
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
