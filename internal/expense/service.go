package expense

import (
	"context"
	"strings"

	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

type CreateRequest struct {
	Name   string
	Amount float64
	Month  string
}

type UpdateRequest struct {
	Name   *string
	Amount *float64
	Month  *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Expense, error)
	// ListByMonth defaults to the current month when month is empty.
	ListByMonth(ctx context.Context, month string) ([]*Expense, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Expense, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{repo: repo, clock: clk}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Expense, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.BadRequest("expense name is required")
	}
	if req.Amount <= 0 {
		return nil, apperror.BadRequest("expense amount must be positive")
	}

	month := req.Month
	if month == "" {
		month = s.clock.Now().Format("2006-01")
	} else if !ValidMonth(month) {
		return nil, ErrInvalidMonth
	}

	e := &Expense{
		Name:   req.Name,
		Amount: req.Amount,
		Month:  month,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) ListByMonth(ctx context.Context, month string) ([]*Expense, error) {
	if month == "" {
		month = s.clock.Now().Format("2006-01")
	} else if !ValidMonth(month) {
		return nil, ErrInvalidMonth
	}
	return s.repo.ListByMonth(ctx, month)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperror.BadRequest("expense name is required")
		}
		e.Name = *req.Name
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, apperror.BadRequest("expense amount must be positive")
		}
		e.Amount = *req.Amount
	}
	if req.Month != nil {
		if !ValidMonth(*req.Month) {
			return nil, ErrInvalidMonth
		}
		e.Month = *req.Month
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
