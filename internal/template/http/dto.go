package http

import (
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/template"
)

type CreateTemplateRequest struct {
	DayOfWeek       int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required,gt=0"`
	IsActive        *bool  `json:"is_active"`
}

type ReplaceTemplatesRequest struct {
	Templates []CreateTemplateRequest `json:"templates" binding:"required,dive"`
}

type UpdateTemplateRequest struct {
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	IntervalMinutes *int    `json:"interval_minutes"`
	IsActive        *bool   `json:"is_active"`
}

type TemplateResponse struct {
	ID              string          `json:"id"`
	DayOfWeek       int             `json:"day_of_week"`
	StartTime       clock.TimeOfDay `json:"start_time"`
	EndTime         clock.TimeOfDay `json:"end_time"`
	IntervalMinutes int             `json:"interval_minutes"`
	IsActive        bool            `json:"is_active"`
}

func NewTemplateResponse(t *template.Template) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		DayOfWeek:       t.DayOfWeek,
		StartTime:       t.Start,
		EndTime:         t.End,
		IntervalMinutes: t.IntervalMinutes,
		IsActive:        t.IsActive,
	}
}

func NewTemplateListResponse(templates []*template.Template) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, NewTemplateResponse(t))
	}
	return out
}
