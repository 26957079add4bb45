package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("/my", h.ListMine)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Administration Routes ===
	adminGroup := group.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.GET("", h.List)
		adminGroup.GET("/:id", h.Get)
		adminGroup.POST("/:id/reschedule", h.Reschedule)
	}
}
