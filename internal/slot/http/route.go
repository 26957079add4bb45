package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/slots")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
	}

	// === Administration Routes ===
	adminGroup := group.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("/generate", h.Generate)
		adminGroup.POST("/:id/block", h.Block)
		adminGroup.POST("/:id/unblock", h.Unblock)
		adminGroup.DELETE("/:id", h.Delete)
	}
}
