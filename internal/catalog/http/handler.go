package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-backend/internal/catalog"
	"github.com/glowbook/salon-backend/internal/pkg/request"
	"github.com/glowbook/salon-backend/internal/pkg/response"
)

type Handler struct {
	service catalog.CatalogService
}

func NewHandler(service catalog.CatalogService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	services, err := h.service.List(c.Request.Context(), !req.IncludeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceListResponse(services))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	svc, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(svc))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	svc, err := h.service.Create(c.Request.Context(), catalog.CreateRequest{
		Name:             body.Name,
		ShortDescription: body.ShortDescription,
		Description:      body.Description,
		DurationMinutes:  body.DurationMinutes,
		Price:            body.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(svc))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	svc, err := h.service.Update(c.Request.Context(), uri.ID, catalog.UpdateRequest{
		Name:             body.Name,
		ShortDescription: body.ShortDescription,
		Description:      body.Description,
		DurationMinutes:  body.DurationMinutes,
		Price:            body.Price,
		IsActive:         body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(svc))
}

func (h *Handler) Deactivate(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
