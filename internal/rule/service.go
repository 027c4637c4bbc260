package rule

import (
	"context"
	"errors"
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

type CreateRequest struct {
	ResourceID               *string
	ResourceKind             *resource.Kind
	MaxDurationMinutes       *int
	MinLeadTimeMinutes       *int
	AllowedStartTime         *string
	AllowedEndTime           *string
	BlockedWeekdays          []int
	MaxActiveBookingsPerUser *int
}

type UpdateRequest struct {
	MaxDurationMinutes       *int
	MinLeadTimeMinutes       *int
	AllowedStartTime         *string
	AllowedEndTime           *string
	BlockedWeekdays          []int
	MaxActiveBookingsPerUser *int
}

// Service manages booking rules and resolves the rule applicable to a
// resource. Rules are administrator-managed; the booking engine only reads
// them through Resolve.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Rule, error)
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context) ([]*Rule, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Rule, error)
	Delete(ctx context.Context, id string) error

	// Resolve returns the single rule governing the given resource, probing
	// the precedence tiers most specific first: resource-specific, kind-level,
	// global. Returns nil when no tier has a rule; callers treat that as
	// "no additional constraint".
	Resolve(ctx context.Context, resourceID string, kind resource.Kind) (*Rule, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validHHMM(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Rule, error) {
	// A resource-specific rule needs the kind too: resources of different
	// kinds share the id space.
	if req.ResourceID != nil && req.ResourceKind == nil {
		return nil, ErrInvalidScope
	}
	if req.ResourceKind != nil && !resource.ValidKind(*req.ResourceKind) {
		return nil, ErrInvalidScope
	}

	r := &Rule{
		ResourceID:               req.ResourceID,
		ResourceKind:             req.ResourceKind,
		MaxDurationMinutes:       DefaultMaxDurationMinutes,
		MinLeadTimeMinutes:       DefaultMinLeadTimeMinutes,
		AllowedStartTime:         DefaultAllowedStartTime,
		AllowedEndTime:           DefaultAllowedEndTime,
		BlockedWeekdays:          req.BlockedWeekdays,
		MaxActiveBookingsPerUser: DefaultMaxActiveBookingsPerUser,
	}
	if req.MaxDurationMinutes != nil {
		r.MaxDurationMinutes = *req.MaxDurationMinutes
	}
	if req.MinLeadTimeMinutes != nil {
		r.MinLeadTimeMinutes = *req.MinLeadTimeMinutes
	}
	if req.AllowedStartTime != nil {
		r.AllowedStartTime = *req.AllowedStartTime
	}
	if req.AllowedEndTime != nil {
		r.AllowedEndTime = *req.AllowedEndTime
	}
	if req.MaxActiveBookingsPerUser != nil {
		r.MaxActiveBookingsPerUser = *req.MaxActiveBookingsPerUser
	}

	if err := validateRule(r); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func validateRule(r *Rule) error {
	if !validHHMM(r.AllowedStartTime) || !validHHMM(r.AllowedEndTime) {
		return ErrInvalidTime
	}
	if r.AllowedStartTime >= r.AllowedEndTime {
		return ErrInvalidTime
	}
	for _, d := range r.BlockedWeekdays {
		if d < 0 || d > 6 {
			return ErrInvalidDay
		}
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Rule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Rule, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MaxDurationMinutes != nil {
		r.MaxDurationMinutes = *req.MaxDurationMinutes
	}
	if req.MinLeadTimeMinutes != nil {
		r.MinLeadTimeMinutes = *req.MinLeadTimeMinutes
	}
	if req.AllowedStartTime != nil {
		r.AllowedStartTime = *req.AllowedStartTime
	}
	if req.AllowedEndTime != nil {
		r.AllowedEndTime = *req.AllowedEndTime
	}
	if req.BlockedWeekdays != nil {
		r.BlockedWeekdays = req.BlockedWeekdays
	}
	if req.MaxActiveBookingsPerUser != nil {
		r.MaxActiveBookingsPerUser = *req.MaxActiveBookingsPerUser
	}

	if err := validateRule(r); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Resolve(ctx context.Context, resourceID string, kind resource.Kind) (*Rule, error) {
	// Tier 1: rule pinned to this exact resource.
	r, err := s.repo.FindByScope(ctx, &resourceID, &kind)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// Tier 2: kind-level default.
	r, err = s.repo.FindByScope(ctx, nil, &kind)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// Tier 3: global default.
	r, err = s.repo.FindByScope(ctx, nil, nil)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// No rule anywhere: deliberately permissive, the booking is unconstrained.
	return nil, nil
}
