package events

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// NewLogSubscriber returns a handler that logs booking events. It stands in
// for the realtime push gateway: anything that should fan out to clients
// subscribes to the same bus.
func NewLogSubscriber(logger zerolog.Logger) Handler {
	return func(event *Event) error {
		var payload BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			logger.Warn().Err(err).Str("type", event.Type).Msg("malformed event payload")
			return err
		}

		logger.Info().
			Str("type", event.Type).
			Str("booking_id", payload.BookingID).
			Str("resource_id", payload.ResourceID).
			Str("resource_kind", payload.ResourceKind).
			Str("status", payload.Status).
			Msg("booking event")
		return nil
	}
}

// SubscribeBookingEvents attaches the handler to all booking event types.
func SubscribeBookingEvents(bus *Bus, handler Handler) {
	bus.Subscribe(EventBookingCreated, handler)
	bus.Subscribe(EventBookingConfirmed, handler)
	bus.Subscribe(EventBookingCancelled, handler)
}
