package http

import "github.com/glowbook/salon-backend/internal/catalog"

type CreateServiceRequest struct {
	Name             string  `json:"name" binding:"required"`
	ShortDescription string  `json:"short_description"`
	Description      string  `json:"description"`
	DurationMinutes  int     `json:"duration_minutes" binding:"required,gt=0"`
	Price            float64 `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name             *string  `json:"name"`
	ShortDescription *string  `json:"short_description"`
	Description      *string  `json:"description"`
	DurationMinutes  *int     `json:"duration_minutes"`
	Price            *float64 `json:"price"`
	IsActive         *bool    `json:"is_active"`
}

type ListServicesRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

type ServiceResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ShortDescription string  `json:"short_description"`
	Description      string  `json:"description"`
	DurationMinutes  int     `json:"duration_minutes"`
	Price            float64 `json:"price"`
	IsActive         bool    `json:"is_active"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:               s.ID,
		Name:             s.Name,
		ShortDescription: s.ShortDescription,
		Description:      s.Description,
		DurationMinutes:  s.DurationMinutes,
		Price:            s.Price,
		IsActive:         s.IsActive,
	}
}

func NewServiceListResponse(services []*catalog.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, NewServiceResponse(s))
	}
	return out
}
