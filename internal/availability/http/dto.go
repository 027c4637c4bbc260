package http

import (
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/booking"
)

// SearchRequest defines query parameters for the availability search.
type SearchRequest struct {
	Start    time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End      time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Kind     string    `form:"kind" binding:"omitempty,oneof=ROOM VEHICLE EQUIPMENT"`
	Status   string    `form:"status" binding:"omitempty,oneof=available maintenance retired"`
	OrderBy  string    `form:"order_by" binding:"omitempty,oneof=id kind created_at status name brand model plate serial_number capacity"`
	OrderDir string    `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Validate performs custom validation for SearchRequest.
func (r *SearchRequest) Validate() error {
	if !r.End.After(r.Start) {
		return booking.ErrInvalidInterval
	}
	return nil
}
