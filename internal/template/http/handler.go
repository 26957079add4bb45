package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/request"
	"github.com/glowbook/salon-backend/internal/pkg/response"
	"github.com/glowbook/salon-backend/internal/template"
)

type Handler struct {
	service template.Service
}

func NewHandler(service template.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	templates, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTemplateListResponse(templates))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateTemplateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
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

	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}

	t, err := h.service.Create(c.Request.Context(), template.CreateRequest{
		DayOfWeek:       body.DayOfWeek,
		Start:           start,
		End:             end,
		IntervalMinutes: body.IntervalMinutes,
		IsActive:        active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTemplateResponse(t))
}

func (h *Handler) Replace(c *gin.Context) {
	var body ReplaceTemplatesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	reqs := make([]template.CreateRequest, 0, len(body.Templates))
	for _, item := range body.Templates {
		start, err := clock.ParseTimeOfDay(item.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be formatted as HH:MM"})
			return
		}
		end, err := clock.ParseTimeOfDay(item.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be formatted as HH:MM"})
			return
		}
		active := true
		if item.IsActive != nil {
			active = *item.IsActive
		}
		reqs = append(reqs, template.CreateRequest{
			DayOfWeek:       item.DayOfWeek,
			Start:           start,
			End:             end,
			IntervalMinutes: item.IntervalMinutes,
			IsActive:        active,
		})
	}

	templates, err := h.service.Replace(c.Request.Context(), reqs)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTemplateListResponse(templates))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateTemplateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := template.UpdateRequest{
		IntervalMinutes: body.IntervalMinutes,
		IsActive:        body.IsActive,
	}
	if body.StartTime != nil {
		start, err := clock.ParseTimeOfDay(*body.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be formatted as HH:MM"})
			return
		}
		req.Start = &start
	}
	if body.EndTime != nil {
		end, err := clock.ParseTimeOfDay(*body.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be formatted as HH:MM"})
			return
		}
		req.End = &end
	}

	t, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTemplateResponse(t))
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
