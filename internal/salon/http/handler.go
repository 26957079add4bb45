package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-backend/internal/pkg/response"
	"github.com/glowbook/salon-backend/internal/salon"
)

type Handler struct {
	service salon.InfoService
}

func NewHandler(service salon.InfoService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	info, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewInfoResponse(info))
}

func (h *Handler) Update(c *gin.Context) {
	var body UpdateInfoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	info, err := h.service.Update(c.Request.Context(), salon.UpdateRequest{
		Name:             body.Name,
		Description:      body.Description,
		Address:          body.Address,
		Phone:            body.Phone,
		WorkingHoursText: body.WorkingHoursText,
		PreparationText:  body.PreparationText,
		Instagram:        body.Instagram,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewInfoResponse(info))
}
