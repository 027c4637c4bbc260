package booking

import (
	"context"
	"errors"
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/events"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
	"github.com/bookingcore/resource-booking-backend/internal/rule"
)

type CreateRequest struct {
	RequesterID  string
	ResourceID   string
	ResourceKind resource.Kind
	StartTime    time.Time
	EndTime      time.Time
}

type UpdateRequest struct {
	StartTime *time.Time
	EndTime   *time.Time
}

// Service validates and executes booking state changes. Validation runs a
// fixed sequence of checks and the first failure wins; the conflict check and
// the write are serialized per resource through the repository transaction.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, requesterID string, isAdmin bool) (*Booking, error)
	Cancel(ctx context.Context, id string, requesterID string, isAdmin bool) (*Booking, error)
	Confirm(ctx context.Context, id string) (*Booking, error)
	Reject(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo        Repository
	resService  resource.Service
	ruleService rule.Service
	bus         *events.Bus
	now         func() time.Time
}

// NewService creates a booking Service using the real clock.
func NewService(repo Repository, resService resource.Service, ruleService rule.Service, bus *events.Bus) Service {
	return NewServiceWithClock(repo, resService, ruleService, bus, func() time.Time { return time.Now().UTC() })
}

// NewServiceWithClock creates a booking Service with an injectable clock so
// time-dependent checks can be tested deterministically.
func NewServiceWithClock(repo Repository, resService resource.Service, ruleService rule.Service, bus *events.Bus, now func() time.Time) Service {
	return &service{
		repo:        repo,
		resService:  resService,
		ruleService: ruleService,
		bus:         bus,
		now:         now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	now := s.now()

	// 1. Interval must be non-empty.
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidInterval
	}
	// 2. No booking of past or current-instant slots.
	if !req.StartTime.After(now) {
		return nil, ErrPastStart
	}

	// 3. Resource must exist under the requested (id, kind) identity and be
	// in the available lifecycle state.
	res, err := s.resService.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if res.Kind != req.ResourceKind {
		return nil, ErrResourceNotFound
	}
	if res.Status() != resource.StatusAvailable {
		return nil, ErrResourceUnavailable
	}

	// 4. Policy rule, most specific tier first. No rule means no constraint.
	r, err := s.ruleService.Resolve(ctx, req.ResourceID, req.ResourceKind)
	if err != nil {
		return nil, err
	}
	if err := rule.CheckInterval(r, req.StartTime, req.EndTime, now); err != nil {
		return nil, err
	}
	if r != nil {
		activeCount, err := s.repo.CountActiveForUser(ctx, req.RequesterID, now)
		if err != nil {
			return nil, err
		}
		if rule.QuotaExceeded(r, activeCount) {
			return nil, ErrUserQuotaExceeded
		}
	}

	// 5. Conflict check and insert, serialized per resource. Without the
	// lock two concurrent requests could both pass the check and commit.
	b := &Booking{
		ResourceID:   req.ResourceID,
		ResourceKind: req.ResourceKind,
		RequesterID:  req.RequesterID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       StatusPending,
	}

	err = s.repo.InTx(ctx, func(txRepo Repository) error {
		if err := txRepo.LockResource(ctx, req.ResourceID, req.ResourceKind); err != nil {
			return err
		}
		hasOverlap, err := txRepo.HasOverlap(ctx, req.ResourceID, req.ResourceKind, req.StartTime, req.EndTime, "")
		if err != nil {
			return err
		}
		if hasOverlap {
			return ErrSlotConflict
		}
		return txRepo.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.EventBookingCreated, b, "")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, requesterID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.RequesterID != requesterID && !isAdmin {
		return nil, ErrPermissionDenied
	}

	// Confirmed, cancelled and rejected bookings are immutable to interval
	// edits.
	if b.Status != StatusPending {
		return nil, ErrNotEditable
	}

	newStart := b.StartTime
	newEnd := b.EndTime
	changed := false
	if req.StartTime != nil {
		newStart = *req.StartTime
		changed = true
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
		changed = true
	}
	if !changed {
		return b, nil
	}

	now := s.now()

	if !newEnd.After(newStart) {
		return nil, ErrInvalidInterval
	}

	// Re-run the rule checks against the new interval.
	r, err := s.ruleService.Resolve(ctx, b.ResourceID, b.ResourceKind)
	if err != nil {
		return nil, err
	}
	if err := rule.CheckInterval(r, newStart, newEnd, now); err != nil {
		return nil, err
	}

	b.StartTime = newStart
	b.EndTime = newEnd

	// Conflict check excluding the booking itself, under the same per
	// resource serialization as create.
	err = s.repo.InTx(ctx, func(txRepo Repository) error {
		if err := txRepo.LockResource(ctx, b.ResourceID, b.ResourceKind); err != nil {
			return err
		}
		hasOverlap, err := txRepo.HasOverlap(ctx, b.ResourceID, b.ResourceKind, newStart, newEnd, b.ID)
		if err != nil {
			return err
		}
		if hasOverlap {
			return ErrSlotConflict
		}
		return txRepo.UpdateInterval(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string, requesterID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.RequesterID != requesterID && !isAdmin {
		return nil, ErrPermissionDenied
	}

	if b.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if b.Status == StatusRejected {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled

	s.publish(events.EventBookingCancelled, b, requesterID)
	return b, nil
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, StatusConfirmed); err != nil {
		return nil, err
	}
	b.Status = StatusConfirmed

	s.publish(events.EventBookingConfirmed, b, "")
	return b, nil
}

func (s *service) Reject(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, StatusRejected); err != nil {
		return nil, err
	}
	b.Status = StatusRejected

	return b, nil
}

// publish emits a domain event; delivery is the bus subscribers' concern and
// never fails the operation.
func (s *service) publish(eventType string, b *Booking, changedBy string) {
	_ = s.bus.PublishJSON(eventType, events.BookingEventPayload{
		BookingID:    b.ID,
		ResourceID:   b.ResourceID,
		ResourceKind: string(b.ResourceKind),
		RequesterID:  b.RequesterID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
		ChangedBy:    changedBy,
	})
}
