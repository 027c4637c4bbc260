package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingcore/resource-booking-backend/internal/booking"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
	"github.com/bookingcore/resource-booking-backend/internal/rule"
)

type stubResourceRepo struct {
	resource.Repository
	resources []*resource.Resource
}

func (s *stubResourceRepo) List(ctx context.Context, filter resource.Filter) ([]*resource.Resource, error) {
	var out []*resource.Resource
	for _, res := range s.resources {
		if filter.Kind != "" && res.Kind != filter.Kind {
			continue
		}
		if !filter.IncludeRetired && res.Status() == resource.StatusRetired {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

// stubBookingRepo knows one set of active bookings and answers the batch
// overlap query from it.
type stubBookingRepo struct {
	booking.Repository
	bookings []*booking.Booking
}

func (s *stubBookingRepo) OverlappingResourceIDs(ctx context.Context, resourceIDs []string, start, end time.Time) (map[string]struct{}, error) {
	ids := make(map[string]struct{}, len(resourceIDs))
	for _, id := range resourceIDs {
		ids[id] = struct{}{}
	}

	booked := make(map[string]struct{})
	for _, b := range s.bookings {
		if _, ok := ids[b.ResourceID]; !ok {
			continue
		}
		if !b.Status.IsActive() {
			continue
		}
		if booking.Overlaps(b.StartTime, b.EndTime, start, end) {
			booked[b.ResourceID] = struct{}{}
		}
	}
	return booked, nil
}

type stubRules struct {
	rule.Service
	byResource map[string]*rule.Rule
}

func (s *stubRules) Resolve(ctx context.Context, resourceID string, kind resource.Kind) (*rule.Rule, error) {
	return s.byResource[resourceID], nil
}

func room(id, name string, capacity int, status resource.LifecycleStatus) *resource.Resource {
	return &resource.Resource{
		ID:   id,
		Kind: resource.KindRoom,
		Detail: resource.Detail{Room: &resource.Room{
			Name: name, Capacity: capacity, Status: status,
		}},
	}
}

func vehicle(id, brand, model, plate string) *resource.Resource {
	return &resource.Resource{
		ID:   id,
		Kind: resource.KindVehicle,
		Detail: resource.Detail{Vehicle: &resource.Vehicle{
			Brand: brand, Model: model, Plate: plate, Status: resource.StatusAvailable,
		}},
	}
}

func newSearchService(resources []*resource.Resource, bookings []*booking.Booking, rules map[string]*rule.Rule) Service {
	now := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	return NewServiceWithClock(
		&stubResourceRepo{resources: resources},
		&stubBookingRepo{bookings: bookings},
		&stubRules{byResource: rules},
		func() time.Time { return now },
	)
}

func ids(resources []*resource.Resource) []string {
	out := make([]string, len(resources))
	for i, res := range resources {
		out[i] = res.ID
	}
	return out
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC) // Monday
	end := start.Add(time.Hour)

	t.Run("invalid window rejected", func(t *testing.T) {
		svc := newSearchService(nil, nil, nil)
		_, err := svc.Search(ctx, Params{Start: end, End: start})
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)

		_, err = svc.Search(ctx, Params{Start: start, End: start})
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		svc := newSearchService(nil, nil, nil)
		_, err := svc.Search(ctx, Params{Start: start, End: end, Kind: "BOAT"})
		assert.ErrorIs(t, err, resource.ErrInvalidKind)
	})

	t.Run("booked resources excluded", func(t *testing.T) {
		resources := []*resource.Resource{
			room("room-1", "Alpha", 4, resource.StatusAvailable),
			room("room-2", "Beta", 8, resource.StatusAvailable),
		}
		bookings := []*booking.Booking{{
			ID: "b1", ResourceID: "room-1", ResourceKind: resource.KindRoom,
			StartTime: start.Add(30 * time.Minute), EndTime: end.Add(30 * time.Minute),
			Status: booking.StatusConfirmed,
		}}
		svc := newSearchService(resources, bookings, nil)

		got, err := svc.Search(ctx, Params{Start: start, End: end})
		require.NoError(t, err)
		assert.Equal(t, []string{"room-2"}, ids(got))
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		resources := []*resource.Resource{room("room-1", "Alpha", 4, resource.StatusAvailable)}
		bookings := []*booking.Booking{{
			ID: "b1", ResourceID: "room-1", ResourceKind: resource.KindRoom,
			StartTime: start, EndTime: end,
			Status: booking.StatusCancelled,
		}}
		svc := newSearchService(resources, bookings, nil)

		got, err := svc.Search(ctx, Params{Start: start, End: end})
		require.NoError(t, err)
		assert.Equal(t, []string{"room-1"}, ids(got))
	})

	t.Run("touching booking does not block", func(t *testing.T) {
		resources := []*resource.Resource{room("room-1", "Alpha", 4, resource.StatusAvailable)}
		bookings := []*booking.Booking{{
			ID: "b1", ResourceID: "room-1", ResourceKind: resource.KindRoom,
			StartTime: end, EndTime: end.Add(time.Hour),
			Status: booking.StatusConfirmed,
		}}
		svc := newSearchService(resources, bookings, nil)

		got, err := svc.Search(ctx, Params{Start: start, End: end})
		require.NoError(t, err)
		assert.Equal(t, []string{"room-1"}, ids(got))
	})

	t.Run("rule violations excluded silently", func(t *testing.T) {
		resources := []*resource.Resource{
			room("room-1", "Alpha", 4, resource.StatusAvailable),
			room("room-2", "Beta", 8, resource.StatusAvailable),
		}
		rules := map[string]*rule.Rule{
			// 30 minute cap makes the one hour window non-compliant.
			"room-1": {
				MaxDurationMinutes: 30,
				AllowedStartTime:   "00:00", AllowedEndTime: "23:59",
				MaxActiveBookingsPerUser: 5,
			},
		}
		svc := newSearchService(resources, nil, rules)

		got, err := svc.Search(ctx, Params{Start: start, End: end})
		require.NoError(t, err)
		assert.Equal(t, []string{"room-2"}, ids(got))
	})

	t.Run("kind and status filters", func(t *testing.T) {
		resources := []*resource.Resource{
			room("room-1", "Alpha", 4, resource.StatusAvailable),
			room("room-2", "Beta", 8, resource.StatusMaintenance),
			vehicle("veh-1", "Kia", "EV6", "ABC-123"),
		}
		svc := newSearchService(resources, nil, nil)

		got, err := svc.Search(ctx, Params{Start: start, End: end, Kind: resource.KindVehicle})
		require.NoError(t, err)
		assert.Equal(t, []string{"veh-1"}, ids(got))

		got, err = svc.Search(ctx, Params{Start: start, End: end, StatusFilter: resource.StatusAvailable})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"room-1", "veh-1"}, ids(got))
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		svc := newSearchService(nil, nil, nil)
		got, err := svc.Search(ctx, Params{Start: start, End: end})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSearchOrdering(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	resources := []*resource.Resource{
		room("r-b", "Banyan", 10, resource.StatusAvailable),
		room("r-a", "Acacia", 2, resource.StatusAvailable),
		room("r-c", "Cedar", 6, resource.StatusAvailable),
	}
	svc := newSearchService(resources, nil, nil)

	t.Run("by name ascending", func(t *testing.T) {
		got, err := svc.Search(ctx, Params{Start: start, End: end, OrderBy: "name"})
		require.NoError(t, err)
		assert.Equal(t, []string{"r-a", "r-b", "r-c"}, ids(got))
	})

	t.Run("by capacity descending", func(t *testing.T) {
		got, err := svc.Search(ctx, Params{Start: start, End: end, OrderBy: "capacity", OrderDir: "desc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"r-b", "r-c", "r-a"}, ids(got))
	})

	t.Run("default ordering is by id", func(t *testing.T) {
		got, err := svc.Search(ctx, Params{Start: start, End: end})
		require.NoError(t, err)
		assert.Equal(t, []string{"r-a", "r-b", "r-c"}, ids(got))
	})
}
