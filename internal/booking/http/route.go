package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Admin Routes ===
	adminGroup := group.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("/:id/confirm", h.Confirm)
		adminGroup.POST("/:id/reject", h.Reject)
	}

	// Booking history of a single resource, registered here to keep all
	// booking handlers in one package.
	histGroup := g.Group("/resources/:id/bookings")
	histGroup.Use(authMiddleware, adminMiddleware)
	{
		histGroup.GET("", h.ListByResource)
	}
}
