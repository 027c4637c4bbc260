package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookingcore/resource-booking-backend/internal/admin"
	"github.com/bookingcore/resource-booking-backend/internal/pkg/response"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

type Handler struct {
	service admin.Service
}

func NewHandler(service admin.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Overview(c *gin.Context) {
	ov, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ov)
}

func (h *Handler) Snapshot(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	snapshots, err := h.service.Snapshot(c.Request.Context(), resource.Kind(req.Kind))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SnapshotEntry, len(snapshots))
	for i, s := range snapshots {
		items[i] = NewSnapshotEntry(s)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) BookingStats(c *gin.Context) {
	stats, err := h.service.BookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingStatsResponse{
		Total:        stats.Total,
		CreatedToday: stats.CreatedToday,
		Active:       stats.Active,
		Cancelled:    stats.Cancelled,
		GeneratedAt:  time.Now().UTC(),
	})
}
