package http

import (
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/resource"
	"github.com/bookingcore/resource-booking-backend/internal/rule"
)

type CreateRuleRequest struct {
	ResourceID               *string `json:"resource_id" binding:"omitempty,uuid"`
	ResourceKind             *string `json:"resource_kind" binding:"omitempty,oneof=ROOM VEHICLE EQUIPMENT"`
	MaxDurationMinutes       *int    `json:"max_duration_minutes" binding:"omitempty,min=1"`
	MinLeadTimeMinutes       *int    `json:"min_lead_time_minutes" binding:"omitempty,min=0"`
	AllowedStartTime         *string `json:"allowed_start_time"`
	AllowedEndTime           *string `json:"allowed_end_time"`
	BlockedWeekdays          []int   `json:"blocked_weekdays"`
	MaxActiveBookingsPerUser *int    `json:"max_active_bookings_per_user" binding:"omitempty,min=0"`
}

type UpdateRuleRequest struct {
	MaxDurationMinutes       *int    `json:"max_duration_minutes" binding:"omitempty,min=1"`
	MinLeadTimeMinutes       *int    `json:"min_lead_time_minutes" binding:"omitempty,min=0"`
	AllowedStartTime         *string `json:"allowed_start_time"`
	AllowedEndTime           *string `json:"allowed_end_time"`
	BlockedWeekdays          []int   `json:"blocked_weekdays"`
	MaxActiveBookingsPerUser *int    `json:"max_active_bookings_per_user" binding:"omitempty,min=0"`
}

type RuleResponse struct {
	ID                       string    `json:"id"`
	ResourceID               *string   `json:"resource_id"`
	ResourceKind             *string   `json:"resource_kind"`
	Scope                    string    `json:"scope"`
	MaxDurationMinutes       int       `json:"max_duration_minutes"`
	MinLeadTimeMinutes       int       `json:"min_lead_time_minutes"`
	AllowedStartTime         string    `json:"allowed_start_time"`
	AllowedEndTime           string    `json:"allowed_end_time"`
	BlockedWeekdays          []int     `json:"blocked_weekdays"`
	MaxActiveBookingsPerUser int       `json:"max_active_bookings_per_user"`
	CreatedAt                time.Time `json:"created_at"`
}

func NewRuleResponse(r *rule.Rule) RuleResponse {
	scope := "global"
	switch {
	case r.ResourceID != nil:
		scope = "resource"
	case r.ResourceKind != nil:
		scope = "kind"
	}

	var kind *string
	if r.ResourceKind != nil {
		k := string(*r.ResourceKind)
		kind = &k
	}

	days := r.BlockedWeekdays
	if days == nil {
		days = []int{}
	}

	return RuleResponse{
		ID:                       r.ID,
		ResourceID:               r.ResourceID,
		ResourceKind:             kind,
		Scope:                    scope,
		MaxDurationMinutes:       r.MaxDurationMinutes,
		MinLeadTimeMinutes:       r.MinLeadTimeMinutes,
		AllowedStartTime:         r.AllowedStartTime,
		AllowedEndTime:           r.AllowedEndTime,
		BlockedWeekdays:          days,
		MaxActiveBookingsPerUser: r.MaxActiveBookingsPerUser,
		CreatedAt:                r.CreatedAt,
	}
}

func kindPtr(s *string) *resource.Kind {
	if s == nil {
		return nil
	}
	k := resource.Kind(*s)
	return &k
}
