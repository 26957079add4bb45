package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-backend/internal/auth"
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/request"
	"github.com/glowbook/salon-backend/internal/pkg/response"
	"github.com/glowbook/salon-backend/internal/slot"
)

type Handler struct {
	service slot.SlotService
}

func NewHandler(service slot.SlotService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	// Only staff see booked and blocked slots.
	var slots []*slot.Slot
	if req.All && auth.GetRole(c) == auth.RoleAdmin {
		slots, err = h.service.ListAll(c.Request.Context(), date)
	} else {
		slots, err = h.service.ListAvailable(c.Request.Context(), date)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotListResponse(slots))
}

func (h *Handler) Generate(c *gin.Context) {
	var body GenerateSlotsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := parseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}
	start, err := clock.ParseTimeOfDay(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be formatted as HH:MM"})
		return
	}
	end, err := clock.ParseTimeOfDay(body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be formatted as HH:MM"})
		return
	}

	created, err := h.service.Generate(c.Request.Context(), slot.GenerateRequest{
		Date:        date,
		Start:       start,
		End:         end,
		IntervalMin: body.IntervalMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, GenerateSlotsResponse{Created: created})
}

func (h *Handler) Block(c *gin.Context) {
	h.setStatus(c, h.service.Block)
}

func (h *Handler) Unblock(c *gin.Context) {
	h.setStatus(c, h.service.Unblock)
}

func (h *Handler) setStatus(c *gin.Context, op func(context.Context, string) (*slot.Slot, error)) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	s, err := op(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
