package rule

import "time"

// CheckInterval evaluates a rule against a requested booking interval. The
// checks run in a fixed order and the first failure wins: duration, lead
// time, allowed hours, blocked weekday. A nil rule means no constraint.
//
// Times of day are compared as fixed-width "HH:MM" strings in UTC;
// lexicographic order matches chronological order for that format.
func CheckInterval(r *Rule, start, end, now time.Time) error {
	if r == nil {
		return nil
	}

	if end.Sub(start) > time.Duration(r.MaxDurationMinutes)*time.Minute {
		return ErrDurationExceeded
	}

	if start.Sub(now) < time.Duration(r.MinLeadTimeMinutes)*time.Minute {
		return ErrLeadTimeInsufficient
	}

	startHM := start.UTC().Format("15:04")
	endHM := end.UTC().Format("15:04")
	if startHM < r.AllowedStartTime || endHM > r.AllowedEndTime {
		return ErrOutsideAllowedHours
	}

	weekday := int(start.UTC().Weekday())
	for _, blocked := range r.BlockedWeekdays {
		if weekday == blocked {
			return ErrBlockedWeekday
		}
	}

	return nil
}

// QuotaExceeded reports whether a requester holding activeCount bookings has
// reached the rule's per-user limit. A nil rule never limits.
func QuotaExceeded(r *Rule, activeCount int) bool {
	if r == nil {
		return false
	}
	return activeCount >= r.MaxActiveBookingsPerUser
}
