package availability

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/booking"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
	"github.com/bookingcore/resource-booking-backend/internal/rule"
)

// Params defines an availability query: a half-open time window plus optional
// kind and detail-status filters and result ordering.
type Params struct {
	Start        time.Time
	End          time.Time
	Kind         resource.Kind            // optional
	StatusFilter resource.LifecycleStatus // optional
	OrderBy      string                   // base or detail field name
	OrderDir     string                   // "asc" (default) or "desc"
}

// Service finds resources that are both unbooked in a time window and
// compliant with their applicable booking rule.
type Service interface {
	Search(ctx context.Context, p Params) ([]*resource.Resource, error)
}

type service struct {
	resRepo     resource.Repository
	bookingRepo booking.Repository
	ruleService rule.Service
	now         func() time.Time
}

// NewService creates an availability Service using the real clock.
func NewService(resRepo resource.Repository, bookingRepo booking.Repository, ruleService rule.Service) Service {
	return NewServiceWithClock(resRepo, bookingRepo, ruleService, func() time.Time { return time.Now().UTC() })
}

// NewServiceWithClock creates an availability Service with an injectable clock.
func NewServiceWithClock(resRepo resource.Repository, bookingRepo booking.Repository, ruleService rule.Service, now func() time.Time) Service {
	return &service{
		resRepo:     resRepo,
		bookingRepo: bookingRepo,
		ruleService: ruleService,
		now:         now,
	}
}

// Search returns the rule-compliant, unbooked resources for the window,
// sorted per the requested ordering. An empty result is not an error;
// translating it to "not found" is the caller's decision.
//
// Results are advisory: the search reads outside the booking transaction, so
// a concurrent booking can race it. The worst case is a stale listing; the
// create path re-checks conflicts under the per-resource lock.
func (s *service) Search(ctx context.Context, p Params) ([]*resource.Resource, error) {
	if !p.End.After(p.Start) {
		return nil, booking.ErrInvalidInterval
	}
	if p.Kind != "" && !resource.ValidKind(p.Kind) {
		return nil, resource.ErrInvalidKind
	}

	// 1. Candidates: all non-retired resources, optionally one kind.
	candidates, err := s.resRepo.List(ctx, resource.Filter{Kind: p.Kind})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []*resource.Resource{}, nil
	}

	// 2. Exclude resources with a conflicting active booking, one batched
	// query instead of one per resource.
	ids := make([]string, len(candidates))
	for i, res := range candidates {
		ids[i] = res.ID
	}
	booked, err := s.bookingRepo.OverlappingResourceIDs(ctx, ids, p.Start, p.End)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]*resource.Resource, 0, len(candidates))

	for _, res := range candidates {
		if _, isBooked := booked[res.ID]; isBooked {
			continue
		}

		// 3. Optional detail-status filter.
		if p.StatusFilter != "" && res.Status() != p.StatusFilter {
			continue
		}

		// 4. Rule compliance for the requested window. The per-user quota is
		// requester-specific and deliberately not evaluated here.
		r, err := s.ruleService.Resolve(ctx, res.ID, res.Kind)
		if err != nil {
			return nil, err
		}
		if rule.CheckInterval(r, p.Start, p.End, now) != nil {
			continue
		}

		result = append(result, res)
	}

	sortResources(result, p.OrderBy, p.OrderDir)
	return result, nil
}

// sortResources orders by a field of the base resource or its kind-specific
// detail record. Resources whose kind lacks the field sort by id so the
// ordering stays deterministic for mixed-kind results.
func sortResources(resources []*resource.Resource, orderBy, orderDir string) {
	if orderBy == "" {
		orderBy = "id"
	}
	desc := strings.EqualFold(orderDir, "desc")

	sort.SliceStable(resources, func(i, j int) bool {
		if desc {
			return compare(resources[j], resources[i], orderBy)
		}
		return compare(resources[i], resources[j], orderBy)
	})
}

func compare(a, b *resource.Resource, field string) bool {
	if field == "capacity" {
		return capacityOf(a) < capacityOf(b)
	}
	av, bv := fieldValue(a, field), fieldValue(b, field)
	if av == bv {
		return a.ID < b.ID
	}
	return av < bv
}

func capacityOf(res *resource.Resource) int {
	if res.Detail.Room != nil {
		return res.Detail.Room.Capacity
	}
	return 0
}

func fieldValue(res *resource.Resource, field string) string {
	switch field {
	case "id":
		return res.ID
	case "kind":
		return string(res.Kind)
	case "created_at":
		return res.CreatedAt.UTC().Format(time.RFC3339Nano)
	case "status":
		return string(res.Status())
	case "name":
		switch {
		case res.Detail.Room != nil:
			return res.Detail.Room.Name
		case res.Detail.Equipment != nil:
			return res.Detail.Equipment.Name
		}
	case "brand":
		if res.Detail.Vehicle != nil {
			return res.Detail.Vehicle.Brand
		}
	case "model":
		if res.Detail.Vehicle != nil {
			return res.Detail.Vehicle.Model
		}
	case "plate":
		if res.Detail.Vehicle != nil {
			return res.Detail.Vehicle.Plate
		}
	case "serial_number":
		if res.Detail.Equipment != nil {
			return res.Detail.Equipment.SerialNumber
		}
	}
	return ""
}
