package http

import (
	"time"

	"github.com/glowbook/salon-backend/internal/expense"
)

type CreateExpenseRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Month  string  `json:"month"`
}

type UpdateExpenseRequest struct {
	Name   *string  `json:"name"`
	Amount *float64 `json:"amount"`
	Month  *string  `json:"month"`
}

type ListExpensesRequest struct {
	Month string `form:"month"`
}

type ExpenseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Month     string    `json:"month"`
	CreatedAt time.Time `json:"created_at"`
}

type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Total float64           `json:"total"`
}

func NewExpenseResponse(e *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount,
		Month:     e.Month,
		CreatedAt: e.CreatedAt,
	}
}

func NewExpenseListResponse(expenses []*expense.Expense) ExpenseListResponse {
	resp := ExpenseListResponse{Items: make([]ExpenseResponse, 0, len(expenses))}
	for _, e := range expenses {
		resp.Items = append(resp.Items, NewExpenseResponse(e))
		resp.Total += e.Amount
	}
	return resp
}
