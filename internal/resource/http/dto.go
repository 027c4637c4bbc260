package http

import (
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/resource"
)

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"omitempty,min=0"`
}

type CreateVehicleRequest struct {
	Brand string `json:"brand" binding:"required"`
	Model string `json:"model" binding:"required"`
	Plate string `json:"plate" binding:"required"`
}

type CreateEquipmentRequest struct {
	Name         string `json:"name" binding:"required"`
	SerialNumber string `json:"serial_number" binding:"required"`
}

// UpdateResourceRequest carries optional detail updates. Fields that do not
// apply to the resource's kind are ignored by the service.
type UpdateResourceRequest struct {
	Name         *string `json:"name"`
	Capacity     *int    `json:"capacity" binding:"omitempty,min=0"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Plate        *string `json:"plate"`
	SerialNumber *string `json:"serial_number"`
	Status       *string `json:"status" binding:"omitempty,oneof=available maintenance retired"`
}

type ListResourcesRequest struct {
	Kind           string `form:"kind" binding:"omitempty,oneof=ROOM VEHICLE EQUIPMENT"`
	IncludeRetired bool   `form:"include_retired"`
}

type RoomDetail struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type VehicleDetail struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

type EquipmentDetail struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
}

type ResourceResponse struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`
	Status    string           `json:"status"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	Room      *RoomDetail      `json:"room,omitempty"`
	Vehicle   *VehicleDetail   `json:"vehicle,omitempty"`
	Equipment *EquipmentDetail `json:"equipment,omitempty"`
}

func NewResourceResponse(res *resource.Resource) ResourceResponse {
	out := ResourceResponse{
		ID:        res.ID,
		Kind:      string(res.Kind),
		Status:    string(res.Status()),
		Name:      res.DisplayName(),
		CreatedAt: res.CreatedAt,
	}
	switch {
	case res.Detail.Room != nil:
		out.Room = &RoomDetail{Name: res.Detail.Room.Name, Capacity: res.Detail.Room.Capacity}
	case res.Detail.Vehicle != nil:
		out.Vehicle = &VehicleDetail{Brand: res.Detail.Vehicle.Brand, Model: res.Detail.Vehicle.Model, Plate: res.Detail.Vehicle.Plate}
	case res.Detail.Equipment != nil:
		out.Equipment = &EquipmentDetail{Name: res.Detail.Equipment.Name, SerialNumber: res.Detail.Equipment.SerialNumber}
	}
	return out
}

func NewResourceResponses(resources []*resource.Resource) []ResourceResponse {
	items := make([]ResourceResponse, len(resources))
	for i, res := range resources {
		items[i] = NewResourceResponse(res)
	}
	return items
}
