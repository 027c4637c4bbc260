package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/booking"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

// StatusCounts breaks a kind's resources down by their current state.
// Occupied means an active booking covers the current instant; such a
// resource is counted as occupied instead of available.
type StatusCounts struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
	Retired     int `json:"retired"`
}

// Overview is the per-kind status breakdown shown on the dashboard.
type Overview struct {
	Rooms     StatusCounts `json:"rooms"`
	Vehicles  StatusCounts `json:"vehicles"`
	Equipment StatusCounts `json:"equipment"`
}

// ResourceSnapshot pairs a resource with the booking occupying it right now,
// if any.
type ResourceSnapshot struct {
	Resource       *resource.Resource
	CurrentBooking *booking.Booking
}

// Service aggregates read-only dashboard views for administrators.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	Snapshot(ctx context.Context, kind resource.Kind) ([]ResourceSnapshot, error)
	BookingStats(ctx context.Context) (booking.Stats, error)
}

type service struct {
	resRepo     resource.Repository
	bookingRepo booking.Repository

	now func() time.Time
}

// NewService creates a new admin Service.
func NewService(resRepo resource.Repository, bookingRepo booking.Repository) Service {
	return NewServiceWithClock(resRepo, bookingRepo, func() time.Time { return time.Now().UTC() })
}

// NewServiceWithClock creates an admin Service with an injectable clock.
func NewServiceWithClock(resRepo resource.Repository, bookingRepo booking.Repository, now func() time.Time) Service {
	return &service{resRepo: resRepo, bookingRepo: bookingRepo, now: now}
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	resources, err := s.resRepo.List(ctx, resource.Filter{IncludeRetired: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	occupied, err := s.occupiedResourceIDs(ctx)
	if err != nil {
		return nil, err
	}

	var ov Overview
	for _, res := range resources {
		var counts *StatusCounts
		switch res.Kind {
		case resource.KindRoom:
			counts = &ov.Rooms
		case resource.KindVehicle:
			counts = &ov.Vehicles
		case resource.KindEquipment:
			counts = &ov.Equipment
		default:
			continue
		}

		counts.Total++
		switch {
		case res.Status() == resource.StatusRetired:
			counts.Retired++
		case res.Status() == resource.StatusMaintenance:
			counts.Maintenance++
		case occupied[res.ID]:
			counts.Occupied++
		default:
			counts.Available++
		}
	}

	return &ov, nil
}

func (s *service) Snapshot(ctx context.Context, kind resource.Kind) ([]ResourceSnapshot, error) {
	if !resource.ValidKind(kind) {
		return nil, resource.ErrInvalidKind
	}

	resources, err := s.resRepo.List(ctx, resource.Filter{Kind: kind, IncludeRetired: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	active, err := s.bookingRepo.ListActiveAt(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load current bookings: %w", err)
	}
	current := make(map[string]*booking.Booking, len(active))
	for _, b := range active {
		current[b.ResourceID] = b
	}

	snapshots := make([]ResourceSnapshot, 0, len(resources))
	for _, res := range resources {
		snapshots = append(snapshots, ResourceSnapshot{
			Resource:       res,
			CurrentBooking: current[res.ID],
		})
	}
	return snapshots, nil
}

func (s *service) BookingStats(ctx context.Context) (booking.Stats, error) {
	return s.bookingRepo.Stats(ctx, s.now())
}

func (s *service) occupiedResourceIDs(ctx context.Context) (map[string]bool, error) {
	active, err := s.bookingRepo.ListActiveAt(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load current bookings: %w", err)
	}
	occupied := make(map[string]bool, len(active))
	for _, b := range active {
		occupied[b.ResourceID] = true
	}
	return occupied, nil
}
