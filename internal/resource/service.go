package resource

import (
	"context"
	"strings"
)

type CreateRoomRequest struct {
	Name     string
	Capacity int
}

type CreateVehicleRequest struct {
	Brand string
	Model string
	Plate string
}

type CreateEquipmentRequest struct {
	Name         string
	SerialNumber string
}

// UpdateDetailRequest carries optional field updates for a resource's detail
// record. Fields that do not apply to the resource's kind are ignored.
type UpdateDetailRequest struct {
	Name         *string
	Capacity     *int
	Brand        *string
	Model        *string
	Plate        *string
	SerialNumber *string
	Status       *LifecycleStatus
}

type Service interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*Resource, error)
	CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*Resource, error)
	CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, error)
	Update(ctx context.Context, id string, req UpdateDetailRequest) (*Resource, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Resource, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	res := &Resource{
		Kind: KindRoom,
		Detail: Detail{Room: &Room{
			Name:     strings.TrimSpace(req.Name),
			Capacity: req.Capacity,
			Status:   StatusAvailable,
		}},
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*Resource, error) {
	if strings.TrimSpace(req.Brand) == "" || strings.TrimSpace(req.Model) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(req.Plate) == "" {
		return nil, ErrEmptyName
	}

	res := &Resource{
		Kind: KindVehicle,
		Detail: Detail{Vehicle: &Vehicle{
			Brand:  strings.TrimSpace(req.Brand),
			Model:  strings.TrimSpace(req.Model),
			Plate:  strings.TrimSpace(req.Plate),
			Status: StatusAvailable,
		}},
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (*Resource, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.SerialNumber) == "" {
		return nil, ErrEmptyName
	}

	res := &Resource{
		Kind: KindEquipment,
		Detail: Detail{Equipment: &Equipment{
			Name:         strings.TrimSpace(req.Name),
			SerialNumber: strings.TrimSpace(req.SerialNumber),
			Status:       StatusAvailable,
		}},
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resource, error) {
	if filter.Kind != "" && !ValidKind(filter.Kind) {
		return nil, ErrInvalidKind
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateDetailRequest) (*Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}

	switch res.Kind {
	case KindRoom:
		d := res.Detail.Room
		if d == nil {
			return nil, ErrDetailMissing
		}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return nil, ErrEmptyName
			}
			d.Name = strings.TrimSpace(*req.Name)
		}
		if req.Capacity != nil {
			d.Capacity = *req.Capacity
		}
		if req.Status != nil {
			d.Status = *req.Status
		}
	case KindVehicle:
		d := res.Detail.Vehicle
		if d == nil {
			return nil, ErrDetailMissing
		}
		if req.Brand != nil {
			d.Brand = strings.TrimSpace(*req.Brand)
		}
		if req.Model != nil {
			d.Model = strings.TrimSpace(*req.Model)
		}
		if req.Plate != nil {
			d.Plate = strings.TrimSpace(*req.Plate)
		}
		if req.Status != nil {
			d.Status = *req.Status
		}
	case KindEquipment:
		d := res.Detail.Equipment
		if d == nil {
			return nil, ErrDetailMissing
		}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return nil, ErrEmptyName
			}
			d.Name = strings.TrimSpace(*req.Name)
		}
		if req.SerialNumber != nil {
			d.SerialNumber = strings.TrimSpace(*req.SerialNumber)
		}
		if req.Status != nil {
			d.Status = *req.Status
		}
	}

	if err := s.repo.UpdateDetail(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
