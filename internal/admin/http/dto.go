package http

import (
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/admin"
	bookingHttp "github.com/bookingcore/resource-booking-backend/internal/booking/http"
	resHttp "github.com/bookingcore/resource-booking-backend/internal/resource/http"
)

type SnapshotRequest struct {
	Kind string `form:"kind" binding:"required,oneof=ROOM VEHICLE EQUIPMENT"`
}

type SnapshotEntry struct {
	Resource       resHttp.ResourceResponse     `json:"resource"`
	CurrentBooking *bookingHttp.BookingResponse `json:"current_booking"`
}

func NewSnapshotEntry(s admin.ResourceSnapshot) SnapshotEntry {
	entry := SnapshotEntry{Resource: resHttp.NewResourceResponse(s.Resource)}
	if s.CurrentBooking != nil {
		b := bookingHttp.NewBookingResponse(s.CurrentBooking)
		entry.CurrentBooking = &b
	}
	return entry
}

type BookingStatsResponse struct {
	Total        int       `json:"total"`
	CreatedToday int       `json:"created_today"`
	Active       int       `json:"active"`
	Cancelled    int       `json:"cancelled"`
	GeneratedAt  time.Time `json:"generated_at"`
}
