package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-backend/internal/expense"
	"github.com/glowbook/salon-backend/internal/pkg/request"
	"github.com/glowbook/salon-backend/internal/pkg/response"
)

type Handler struct {
	service expense.Service
}

func NewHandler(service expense.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	expenses, err := h.service.ListByMonth(c.Request.Context(), req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExpenseListResponse(expenses))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateExpenseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	e, err := h.service.Create(c.Request.Context(), expense.CreateRequest{
		Name:   body.Name,
		Amount: body.Amount,
		Month:  body.Month,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewExpenseResponse(e))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateExpenseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	e, err := h.service.Update(c.Request.Context(), uri.ID, expense.UpdateRequest{
		Name:   body.Name,
		Amount: body.Amount,
		Month:  body.Month,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExpenseResponse(e))
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
