package booking

import (
	"net/http"
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/pkg/apperror"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking_not_found", "booking not found")
	ErrResourceNotFound = apperror.New(http.StatusNotFound, "resource_not_found", "resource not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission_denied", "permission denied")

	// Validation rejections. Each carries a stable reason code so callers can
	// react programmatically; none of them is ever retried automatically.
	ErrInvalidInterval     = apperror.New(http.StatusBadRequest, "invalid_interval", "end time must be after start time")
	ErrPastStart           = apperror.New(http.StatusBadRequest, "past_start", "cannot create booking in the past")
	ErrResourceUnavailable = apperror.New(http.StatusConflict, "resource_unavailable", "resource is not available for booking")
	ErrUserQuotaExceeded   = apperror.New(http.StatusConflict, "user_quota_exceeded", "active bookings limit reached")
	ErrSlotConflict        = apperror.New(http.StatusConflict, "slot_conflict", "time slot already booked")

	ErrNotEditable       = apperror.New(http.StatusConflict, "not_editable", "only pending bookings can be modified")
	ErrAlreadyCancelled  = apperror.New(http.StatusConflict, "already_cancelled", "booking is already cancelled")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "invalid_transition", "booking status does not allow this transition")
)

// Status is the lifecycle state of a booking. Pending bookings may become
// confirmed, cancelled or rejected; confirmed bookings may only be cancelled;
// cancelled and rejected are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// ActiveStatuses are the statuses that occupy a resource's time slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func activeStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

// IsActive reports whether the status occupies its time slot.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking reserves a resource for a half-open time interval [start, end).
// The resource is referenced by (ResourceID, ResourceKind) because resources
// of different kinds share the id space via an indirection table.
type Booking struct {
	ID           string
	ResourceID   string
	ResourceKind resource.Kind
	RequesterID  string
	StartTime    time.Time
	EndTime      time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Overlaps is the canonical half-open overlap predicate: [aStart, aEnd) and
// [bStart, bEnd) overlap iff aStart < bEnd && bStart < aEnd. Touching
// intervals (aEnd == bStart) do not overlap, so adjacent bookings can share a
// boundary instant. The repository's SQL mirrors this predicate exactly.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Stats holds aggregate booking counts for dashboard views.
type Stats struct {
	Total        int
	CreatedToday int
	Active       int
	Cancelled    int
}

// Filter defines parameters for listing bookings.
type Filter struct {
	RequesterID string
	ResourceID  string
	Status      Status
	From        *time.Time // bookings ending after this instant
	To          *time.Time // bookings starting before this instant
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
