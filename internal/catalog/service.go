package catalog

import (
	"context"
	"strings"

	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

type CreateRequest struct {
	Name             string
	ShortDescription string
	Description      string
	DurationMinutes  int
	Price            float64
}

type UpdateRequest struct {
	Name             *string
	ShortDescription *string
	Description      *string
	DurationMinutes  *int
	Price            *float64
	IsActive         *bool
}

type CatalogService interface {
	Create(ctx context.Context, req CreateRequest) (*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	// GetActive returns the service only if it is currently bookable.
	GetActive(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, activeOnly bool) ([]*Service, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Service, error)
	Deactivate(ctx context.Context, id string) error
}

type catalogService struct {
	repo Repository
}

func NewService(repo Repository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Create(ctx context.Context, req CreateRequest) (*Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.BadRequest("service name is required")
	}
	if req.DurationMinutes <= 0 {
		return nil, apperror.BadRequest("service duration must be positive")
	}

	svc := &Service{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		DurationMinutes:  req.DurationMinutes,
		Price:            req.Price,
		IsActive:         true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService) GetActive(ctx context.Context, id string) (*Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrNotFound
	}
	return svc, nil
}

func (s *catalogService) List(ctx context.Context, activeOnly bool) ([]*Service, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *catalogService) Update(ctx context.Context, id string, req UpdateRequest) (*Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperror.BadRequest("service name is required")
		}
		svc.Name = *req.Name
	}
	if req.ShortDescription != nil {
		svc.ShortDescription = *req.ShortDescription
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, apperror.BadRequest("service duration must be positive")
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}
