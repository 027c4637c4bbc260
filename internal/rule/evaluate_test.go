package rule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strictRule() *Rule {
	return &Rule{
		MaxDurationMinutes:       120,
		MinLeadTimeMinutes:       60,
		AllowedStartTime:         "09:00",
		AllowedEndTime:           "18:00",
		BlockedWeekdays:          []int{0, 6},
		MaxActiveBookingsPerUser: 3,
	}
}

func TestCheckInterval(t *testing.T) {
	now := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)

	t.Run("nil rule allows anything", func(t *testing.T) {
		start := now.Add(-24 * time.Hour)
		assert.NoError(t, CheckInterval(nil, start, start.Add(100*time.Hour), now))
	})

	t.Run("within all limits", func(t *testing.T) {
		start := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC) // Monday
		assert.NoError(t, CheckInterval(strictRule(), start, start.Add(2*time.Hour), now))
	})

	t.Run("duration over the cap", func(t *testing.T) {
		start := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
		err := CheckInterval(strictRule(), start, start.Add(121*time.Minute), now)
		assert.ErrorIs(t, err, ErrDurationExceeded)
	})

	t.Run("duration exactly at the cap passes", func(t *testing.T) {
		start := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
		assert.NoError(t, CheckInterval(strictRule(), start, start.Add(120*time.Minute), now))
	})

	t.Run("lead time too short", func(t *testing.T) {
		start := now.Add(59 * time.Minute)
		err := CheckInterval(strictRule(), start, start.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrLeadTimeInsufficient)
	})

	t.Run("lead time exactly met passes", func(t *testing.T) {
		r := strictRule()
		r.AllowedStartTime = "00:00"
		r.BlockedWeekdays = nil
		start := now.Add(60 * time.Minute)
		assert.NoError(t, CheckInterval(r, start, start.Add(time.Hour), now))
	})

	t.Run("starts before allowed hours", func(t *testing.T) {
		r := strictRule()
		r.MinLeadTimeMinutes = 0
		start := time.Date(2025, 12, 15, 8, 59, 0, 0, time.UTC)
		err := CheckInterval(r, start, start.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrOutsideAllowedHours)
	})

	t.Run("ends after allowed hours", func(t *testing.T) {
		start := time.Date(2025, 12, 15, 17, 0, 0, 0, time.UTC)
		err := CheckInterval(strictRule(), start, start.Add(90*time.Minute), now)
		assert.ErrorIs(t, err, ErrOutsideAllowedHours)
	})

	t.Run("boundary times are inclusive", func(t *testing.T) {
		start := time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC)
		end := time.Date(2025, 12, 15, 11, 0, 0, 0, time.UTC)
		assert.NoError(t, CheckInterval(strictRule(), start, end, now))
	})

	t.Run("blocked weekday uses the start day", func(t *testing.T) {
		sunday := time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC)
		err := CheckInterval(strictRule(), sunday, sunday.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrBlockedWeekday)

		saturday := time.Date(2025, 12, 13, 10, 0, 0, 0, time.UTC)
		err = CheckInterval(strictRule(), saturday, saturday.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrBlockedWeekday)
	})

	t.Run("check order: duration beats weekday", func(t *testing.T) {
		sunday := time.Date(2025, 12, 14, 10, 0, 0, 0, time.UTC)
		err := CheckInterval(strictRule(), sunday, sunday.Add(5*time.Hour), now)
		assert.ErrorIs(t, err, ErrDurationExceeded)
	})
}

func TestQuotaExceeded(t *testing.T) {
	r := strictRule()

	assert.False(t, QuotaExceeded(nil, 1000))
	assert.False(t, QuotaExceeded(r, 2))
	assert.True(t, QuotaExceeded(r, 3))
	assert.True(t, QuotaExceeded(r, 4))
}
