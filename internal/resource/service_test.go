package resource

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	resources map[string]*Resource
	seq       int
}

func newMemRepo() *memRepo {
	return &memRepo{resources: make(map[string]*Resource)}
}

func (m *memRepo) Create(ctx context.Context, res *Resource) error {
	m.seq++
	res.ID = fmt.Sprintf("res-%d", m.seq)
	m.resources[res.ID] = res
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Resource, error) {
	res, ok := m.resources[id]
	if !ok {
		return nil, ErrNotFound
	}
	return res, nil
}

func (m *memRepo) List(ctx context.Context, filter Filter) ([]*Resource, error) {
	var out []*Resource
	for _, res := range m.resources {
		if filter.Kind != "" && res.Kind != filter.Kind {
			continue
		}
		if !filter.IncludeRetired && res.Status() == StatusRetired {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (m *memRepo) UpdateDetail(ctx context.Context, res *Resource) error {
	if _, ok := m.resources[res.ID]; !ok {
		return ErrNotFound
	}
	m.resources[res.ID] = res
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.resources[id]; !ok {
		return ErrNotFound
	}
	delete(m.resources, id)
	return nil
}

func TestCreateResources(t *testing.T) {
	ctx := context.Background()

	t.Run("room defaults to available", func(t *testing.T) {
		svc := NewService(newMemRepo())
		res, err := svc.CreateRoom(ctx, CreateRoomRequest{Name: " Board Room ", Capacity: 12})
		require.NoError(t, err)
		assert.Equal(t, KindRoom, res.Kind)
		assert.Equal(t, StatusAvailable, res.Status())
		assert.Equal(t, "Board Room", res.Detail.Room.Name)
	})

	t.Run("blank room name rejected", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.CreateRoom(ctx, CreateRoomRequest{Name: "   "})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("vehicle requires brand model plate", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.CreateVehicle(ctx, CreateVehicleRequest{Brand: "Kia", Model: "EV6"})
		assert.ErrorIs(t, err, ErrEmptyName)

		res, err := svc.CreateVehicle(ctx, CreateVehicleRequest{Brand: "Kia", Model: "EV6", Plate: "ABC-123"})
		require.NoError(t, err)
		assert.Equal(t, KindVehicle, res.Kind)
	})

	t.Run("equipment requires serial number", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.CreateEquipment(ctx, CreateEquipmentRequest{Name: "Projector"})
		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestUpdateResource(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the matching kind fields", func(t *testing.T) {
		svc := NewService(newMemRepo())
		res, err := svc.CreateRoom(ctx, CreateRoomRequest{Name: "Old", Capacity: 4})
		require.NoError(t, err)

		name := "New"
		capacity := 10
		status := StatusMaintenance
		updated, err := svc.Update(ctx, res.ID, UpdateDetailRequest{
			Name: &name, Capacity: &capacity, Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Detail.Room.Name)
		assert.Equal(t, 10, updated.Detail.Room.Capacity)
		assert.Equal(t, StatusMaintenance, updated.Status())
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		svc := NewService(newMemRepo())
		res, err := svc.CreateRoom(ctx, CreateRoomRequest{Name: "Room"})
		require.NoError(t, err)

		bad := LifecycleStatus("broken")
		_, err = svc.Update(ctx, res.ID, UpdateDetailRequest{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("retire removes from default listing", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)
		res, err := svc.CreateRoom(ctx, CreateRoomRequest{Name: "Room"})
		require.NoError(t, err)

		retired := StatusRetired
		_, err = svc.Update(ctx, res.ID, UpdateDetailRequest{Status: &retired})
		require.NoError(t, err)

		visible, err := svc.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Empty(t, visible)

		all, err := svc.List(ctx, Filter{IncludeRetired: true})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestListValidation(t *testing.T) {
	svc := NewService(newMemRepo())
	_, err := svc.List(context.Background(), Filter{Kind: "BOAT"})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestResourceStatusFallback(t *testing.T) {
	res := &Resource{ID: "res-1", Kind: KindRoom}
	assert.Equal(t, StatusRetired, res.Status(), "missing detail must never be bookable")
}
