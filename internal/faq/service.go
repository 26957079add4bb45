package faq

import (
	"context"
	"strings"

	"github.com/glowbook/salon-backend/internal/pkg/apperror"
)

type CreateRequest struct {
	Question   string
	Answer     string
	OrderIndex int
}

type UpdateRequest struct {
	Question   *string
	Answer     *string
	OrderIndex *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		return nil, apperror.BadRequest("question and answer are required")
	}

	item := &Item{
		Question:   req.Question,
		Answer:     req.Answer,
		OrderIndex: req.OrderIndex,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Question != nil {
		if strings.TrimSpace(*req.Question) == "" {
			return nil, apperror.BadRequest("question is required")
		}
		item.Question = *req.Question
	}
	if req.Answer != nil {
		if strings.TrimSpace(*req.Answer) == "" {
			return nil, apperror.BadRequest("answer is required")
		}
		item.Answer = *req.Answer
	}
	if req.OrderIndex != nil {
		item.OrderIndex = *req.OrderIndex
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
