package rule

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

// memRepo keeps rules in memory and matches scopes the way the SQL
// repository does: a nil reference only matches a nil column.
type memRepo struct {
	rules []*Rule
	seq   int
}

func (m *memRepo) Create(ctx context.Context, r *Rule) error {
	m.seq++
	r.ID = fmt.Sprintf("rule-%d", m.seq)
	m.rules = append(m.rules, r)
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Rule, error) {
	for _, r := range m.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) List(ctx context.Context) ([]*Rule, error) {
	return m.rules, nil
}

func (m *memRepo) Update(ctx context.Context, r *Rule) error {
	for i, existing := range m.rules {
		if existing.ID == r.ID {
			m.rules[i] = r
			return nil
		}
	}
	return ErrNotFound
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	for i, r := range m.rules {
		if r.ID == id {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memRepo) FindByScope(ctx context.Context, resourceID *string, kind *resource.Kind) (*Rule, error) {
	for _, r := range m.rules {
		if !ptrEq(r.ResourceID, resourceID) {
			continue
		}
		if !kindEq(r.ResourceKind, kind) {
			continue
		}
		return r, nil
	}
	return nil, ErrNotFound
}

func ptrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func kindEq(a, b *resource.Kind) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func strPtr(s string) *string             { return &s }
func kPtr(k resource.Kind) *resource.Kind { return &k }
func intPtr(i int) *int                   { return &i }

func TestCreateRuleValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("resource scope requires a kind", func(t *testing.T) {
		svc := NewService(&memRepo{})
		_, err := svc.Create(ctx, CreateRequest{ResourceID: strPtr("res-1")})
		assert.ErrorIs(t, err, ErrInvalidScope)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		svc := NewService(&memRepo{})
		bad := resource.Kind("BOAT")
		_, err := svc.Create(ctx, CreateRequest{ResourceKind: &bad})
		assert.ErrorIs(t, err, ErrInvalidScope)
	})

	t.Run("defaults applied", func(t *testing.T) {
		svc := NewService(&memRepo{})
		r, err := svc.Create(ctx, CreateRequest{})
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxDurationMinutes, r.MaxDurationMinutes)
		assert.Equal(t, DefaultAllowedStartTime, r.AllowedStartTime)
		assert.Equal(t, DefaultAllowedEndTime, r.AllowedEndTime)
		assert.Equal(t, DefaultMaxActiveBookingsPerUser, r.MaxActiveBookingsPerUser)
	})

	t.Run("malformed time rejected", func(t *testing.T) {
		svc := NewService(&memRepo{})
		_, err := svc.Create(ctx, CreateRequest{AllowedStartTime: strPtr("9am")})
		assert.ErrorIs(t, err, ErrInvalidTime)
	})

	t.Run("start must precede end", func(t *testing.T) {
		svc := NewService(&memRepo{})
		_, err := svc.Create(ctx, CreateRequest{
			AllowedStartTime: strPtr("18:00"),
			AllowedEndTime:   strPtr("09:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidTime)
	})

	t.Run("weekday out of range rejected", func(t *testing.T) {
		svc := NewService(&memRepo{})
		_, err := svc.Create(ctx, CreateRequest{BlockedWeekdays: []int{7}})
		assert.ErrorIs(t, err, ErrInvalidDay)
	})
}

func TestResolvePrecedence(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	svc := NewService(repo)

	kind := resource.KindRoom

	global, err := svc.Create(ctx, CreateRequest{MaxDurationMinutes: intPtr(60)})
	require.NoError(t, err)
	kindLevel, err := svc.Create(ctx, CreateRequest{ResourceKind: kPtr(kind), MaxDurationMinutes: intPtr(90)})
	require.NoError(t, err)
	specific, err := svc.Create(ctx, CreateRequest{
		ResourceID: strPtr("room-1"), ResourceKind: kPtr(kind), MaxDurationMinutes: intPtr(30),
	})
	require.NoError(t, err)

	t.Run("resource-specific wins", func(t *testing.T) {
		r, err := svc.Resolve(ctx, "room-1", kind)
		require.NoError(t, err)
		assert.Equal(t, specific.ID, r.ID)
	})

	t.Run("kind-level when no specific rule", func(t *testing.T) {
		r, err := svc.Resolve(ctx, "room-2", kind)
		require.NoError(t, err)
		assert.Equal(t, kindLevel.ID, r.ID)
	})

	t.Run("global as last tier", func(t *testing.T) {
		r, err := svc.Resolve(ctx, "truck-1", resource.KindVehicle)
		require.NoError(t, err)
		assert.Equal(t, global.ID, r.ID)
	})

	t.Run("no rule resolves to nil", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, global.ID))
		r, err := svc.Resolve(ctx, "truck-1", resource.KindVehicle)
		require.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("same id under another kind does not match", func(t *testing.T) {
		r, err := svc.Resolve(ctx, "room-1", resource.KindEquipment)
		require.NoError(t, err)
		// Falls through the resource tier and the ROOM kind tier.
		assert.Nil(t, r)
	})
}
