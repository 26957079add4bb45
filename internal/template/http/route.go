package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/templates")

	// === Administration Routes ===
	group.Use(authMiddleware, adminMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.PUT("", h.Replace)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
