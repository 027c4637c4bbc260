package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/admin")
	group.Use(authMiddleware, adminMiddleware)
	{
		group.GET("/overview", h.Overview)
		group.GET("/snapshot", h.Snapshot)
		group.GET("/stats/bookings", h.BookingStats)
	}
}
