package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/faq")

	// === Public Routes ===
	group.GET("", h.List)

	// === Administration Routes ===
	adminGroup := group.Group("")
	adminGroup.Use(authMiddleware, adminMiddleware)
	{
		adminGroup.POST("", h.Create)
		adminGroup.PATCH("/:id", h.Update)
		adminGroup.DELETE("/:id", h.Delete)
	}
}
