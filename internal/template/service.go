package template

import (
	"context"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

type CreateRequest struct {
	DayOfWeek       int
	Start           clock.TimeOfDay
	End             clock.TimeOfDay
	IntervalMinutes int
	IsActive        bool
}

type UpdateRequest struct {
	Start           *clock.TimeOfDay
	End             *clock.TimeOfDay
	IntervalMinutes *int
	IsActive        *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Template, error)
	List(ctx context.Context) ([]*Template, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Template, error)
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, reqs []CreateRequest) ([]*Template, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateRule(start, end clock.TimeOfDay, intervalMin int) error {
	if end <= start {
		return apperror.BadRequest("end time must be after start time")
	}
	if intervalMin <= 0 {
		return apperror.BadRequest("interval must be positive")
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Template, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, apperror.BadRequest("day_of_week must be between 0 and 6")
	}
	if err := validateRule(req.Start, req.End, req.IntervalMinutes); err != nil {
		return nil, err
	}

	t := &Template{
		DayOfWeek:       req.DayOfWeek,
		Start:           req.Start,
		End:             req.End,
		IntervalMinutes: req.IntervalMinutes,
		IsActive:        req.IsActive,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context) ([]*Template, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Template, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Start != nil {
		t.Start = *req.Start
	}
	if req.End != nil {
		t.End = *req.End
	}
	if req.IntervalMinutes != nil {
		t.IntervalMinutes = *req.IntervalMinutes
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := validateRule(t.Start, t.End, t.IntervalMinutes); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Replace overwrites the whole weekly schedule at once.
func (s *service) Replace(ctx context.Context, reqs []CreateRequest) ([]*Template, error) {
	seen := make(map[int]bool, len(reqs))
	templates := make([]*Template, 0, len(reqs))
	for _, req := range reqs {
		if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
			return nil, apperror.BadRequest("day_of_week must be between 0 and 6")
		}
		if seen[req.DayOfWeek] {
			return nil, apperror.BadRequest("duplicate day_of_week in schedule")
		}
		seen[req.DayOfWeek] = true
		if err := validateRule(req.Start, req.End, req.IntervalMinutes); err != nil {
			return nil, err
		}
		templates = append(templates, &Template{
			DayOfWeek:       req.DayOfWeek,
			Start:           req.Start,
			End:             req.End,
			IntervalMinutes: req.IntervalMinutes,
			IsActive:        req.IsActive,
		})
	}

	if err := s.repo.ReplaceAll(ctx, templates); err != nil {
		return nil, err
	}
	return templates, nil
}
