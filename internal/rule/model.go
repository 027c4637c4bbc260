package rule

import (
	"net/http"
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/pkg/apperror"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "rule_not_found", "booking rule not found")
	ErrInvalidScope = apperror.New(http.StatusBadRequest, "invalid_rule_scope", "resource_id requires resource_kind")
	ErrInvalidTime  = apperror.New(http.StatusBadRequest, "invalid_rule_time", "allowed hours must be HH:MM with start before end")
	ErrInvalidDay   = apperror.New(http.StatusBadRequest, "invalid_rule_day", "blocked weekdays must be in range 0-6")

	// Rejections produced when evaluating a rule against a requested interval.
	ErrDurationExceeded     = apperror.New(http.StatusBadRequest, "duration_exceeded", "booking exceeds the maximum allowed duration")
	ErrLeadTimeInsufficient = apperror.New(http.StatusBadRequest, "lead_time_insufficient", "booking does not meet the minimum lead time")
	ErrOutsideAllowedHours  = apperror.New(http.StatusBadRequest, "outside_allowed_hours", "booking falls outside the allowed hours")
	ErrBlockedWeekday       = apperror.New(http.StatusBadRequest, "blocked_weekday", "resource is not bookable on this weekday")
)

// Rule is a policy constraint on bookings. Scope is encoded by the two
// optional references: both set means resource-specific, only ResourceKind set
// means kind-level, neither set means global. Exactly one rule governs any
// booking, chosen by that precedence.
type Rule struct {
	ID                       string
	ResourceID               *string
	ResourceKind             *resource.Kind
	MaxDurationMinutes       int
	MinLeadTimeMinutes       int
	AllowedStartTime         string // "HH:MM", inclusive
	AllowedEndTime           string // "HH:MM", inclusive
	BlockedWeekdays          []int  // 0=Sunday .. 6=Saturday
	MaxActiveBookingsPerUser int
	CreatedAt                time.Time
}

// Defaults applied when a rule is created without explicit values, matching
// the storage-level column defaults.
const (
	DefaultMaxDurationMinutes       = 120
	DefaultMinLeadTimeMinutes       = 0
	DefaultAllowedStartTime         = "00:00"
	DefaultAllowedEndTime           = "23:59"
	DefaultMaxActiveBookingsPerUser = 5
)
