package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-backend/internal/auth"
	"github.com/glowbook/salon-backend/internal/pkg/response"
	"github.com/glowbook/salon-backend/internal/user"
)

type Handler struct {
	service user.Service
}

func NewHandler(service user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AuthTelegram(c *gin.Context) {
	var body AuthTelegramRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, token, err := h.service.AuthTelegram(c.Request.Context(), body.InitData)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: NewUserResponse(u)})
}

func (h *Handler) StaffLogin(c *gin.Context) {
	var body StaffLoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.service.StaffLogin(c.Request.Context(), body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (h *Handler) Me(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var body UpdateProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), auth.GetUserID(c), user.UpdateProfileRequest{
		Phone:        body.Phone,
		ConsentGiven: body.ConsentGiven,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}
