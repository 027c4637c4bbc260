package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishJSON(t *testing.T) {
	bus := NewBus()

	var got []*Event
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		got = append(got, e)
		return nil
	})

	payload := BookingEventPayload{
		BookingID:  "b1",
		ResourceID: "room-1",
		Status:     "pending",
		StartTime:  time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	require.Len(t, got, 1)
	assert.Equal(t, EventBookingCreated, got[0].Type)
	assert.NotEmpty(t, got[0].ID)
	assert.Contains(t, string(got[0].Payload), `"booking_id":"b1"`)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestPublishOnlyMatchingType(t *testing.T) {
	bus := NewBus()

	created, cancelled := 0, 0
	bus.Subscribe(EventBookingCreated, func(e *Event) error { created++; return nil })
	bus.Subscribe(EventBookingCancelled, func(e *Event) error { cancelled++; return nil })

	require.NoError(t, bus.PublishJSON(EventBookingCreated, BookingEventPayload{BookingID: "b1"}))

	assert.Equal(t, 1, created)
	assert.Equal(t, 0, cancelled)
}

func TestSubscribeBookingEventsCoversAllTypes(t *testing.T) {
	bus := NewBus()

	var types []string
	SubscribeBookingEvents(bus, func(e *Event) error {
		types = append(types, e.Type)
		return nil
	})

	for _, eventType := range []string{EventBookingCreated, EventBookingConfirmed, EventBookingCancelled} {
		require.NoError(t, bus.PublishJSON(eventType, BookingEventPayload{}))
	}

	assert.Equal(t, []string{EventBookingCreated, EventBookingConfirmed, EventBookingCancelled}, types)
}

func TestNilBusIsNoop(t *testing.T) {
	var bus *Bus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, BookingEventPayload{}))
}
