package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingcore/resource-booking-backend/internal/booking"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
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

type stubBookingRepo struct {
	booking.Repository
	bookings []*booking.Booking
}

func (s *stubBookingRepo) ListActiveAt(ctx context.Context, at time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range s.bookings {
		if b.Status.IsActive() && !b.StartTime.After(at) && b.EndTime.After(at) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookingRepo) Stats(ctx context.Context, now time.Time) (booking.Stats, error) {
	return booking.Stats{Total: 42, CreatedToday: 3, Active: 7, Cancelled: 5}, nil
}

func room(id string, status resource.LifecycleStatus) *resource.Resource {
	return &resource.Resource{
		ID:     id,
		Kind:   resource.KindRoom,
		Detail: resource.Detail{Room: &resource.Room{Name: id, Capacity: 4, Status: status}},
	}
}

func vehicle(id string, status resource.LifecycleStatus) *resource.Resource {
	return &resource.Resource{
		ID:     id,
		Kind:   resource.KindVehicle,
		Detail: resource.Detail{Vehicle: &resource.Vehicle{Brand: "Kia", Model: id, Plate: id, Status: status}},
	}
}

func TestOverview(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 30, 0, 0, time.UTC)

	resources := []*resource.Resource{
		room("room-1", resource.StatusAvailable),
		room("room-2", resource.StatusAvailable),
		room("room-3", resource.StatusMaintenance),
		room("room-4", resource.StatusRetired),
		vehicle("veh-1", resource.StatusAvailable),
	}
	bookings := []*booking.Booking{
		{
			ID: "b1", ResourceID: "room-1", ResourceKind: resource.KindRoom,
			StartTime: now.Add(-30 * time.Minute), EndTime: now.Add(30 * time.Minute),
			Status: booking.StatusConfirmed,
		},
		{
			// Future booking; the resource is free right now.
			ID: "b2", ResourceID: "room-2", ResourceKind: resource.KindRoom,
			StartTime: now.Add(2 * time.Hour), EndTime: now.Add(3 * time.Hour),
			Status: booking.StatusConfirmed,
		},
	}

	svc := NewServiceWithClock(
		&stubResourceRepo{resources: resources},
		&stubBookingRepo{bookings: bookings},
		func() time.Time { return now },
	)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusCounts{Total: 4, Available: 1, Occupied: 1, Maintenance: 1, Retired: 1}, ov.Rooms)
	assert.Equal(t, StatusCounts{Total: 1, Available: 1}, ov.Vehicles)
	assert.Equal(t, StatusCounts{}, ov.Equipment)
}

func TestSnapshot(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 30, 0, 0, time.UTC)

	current := &booking.Booking{
		ID: "b1", ResourceID: "room-1", ResourceKind: resource.KindRoom,
		RequesterID: "alice",
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(time.Hour),
		Status:      booking.StatusConfirmed,
	}
	resources := []*resource.Resource{
		room("room-1", resource.StatusAvailable),
		room("room-2", resource.StatusAvailable),
	}

	svc := NewServiceWithClock(
		&stubResourceRepo{resources: resources},
		&stubBookingRepo{bookings: []*booking.Booking{current}},
		func() time.Time { return now },
	)

	t.Run("pairs resources with the occupying booking", func(t *testing.T) {
		snapshots, err := svc.Snapshot(context.Background(), resource.KindRoom)
		require.NoError(t, err)
		require.Len(t, snapshots, 2)

		byID := make(map[string]ResourceSnapshot)
		for _, s := range snapshots {
			byID[s.Resource.ID] = s
		}
		require.NotNil(t, byID["room-1"].CurrentBooking)
		assert.Equal(t, "b1", byID["room-1"].CurrentBooking.ID)
		assert.Nil(t, byID["room-2"].CurrentBooking)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		_, err := svc.Snapshot(context.Background(), "BOAT")
		assert.ErrorIs(t, err, resource.ErrInvalidKind)
	})
}

func TestBookingStats(t *testing.T) {
	svc := NewServiceWithClock(&stubResourceRepo{}, &stubBookingRepo{}, time.Now)

	stats, err := svc.BookingStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, booking.Stats{Total: 42, CreatedToday: 3, Active: 7, Cancelled: 5}, stats)
}
