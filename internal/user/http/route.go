package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.POST("/auth/telegram", h.AuthTelegram)
	g.POST("/auth/staff-login", h.StaffLogin)

	// === Authenticated Routes ===
	me := g.Group("/users/me")
	me.Use(authMiddleware)
	{
		me.GET("", h.Me)
		me.PATCH("", h.UpdateProfile)
	}
}
