package resource

import (
	"net/http"
	"time"

	"github.com/bookingcore/resource-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "resource_not_found", "resource not found")
	ErrInvalidKind   = apperror.New(http.StatusBadRequest, "invalid_kind", "invalid resource kind")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid_status", "invalid lifecycle status")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "empty_name", "name cannot be empty")
	ErrDuplicate     = apperror.New(http.StatusConflict, "duplicate_resource", "a resource with the same unique attributes already exists")
	ErrDetailMissing = apperror.New(http.StatusInternalServerError, "detail_missing", "resource detail record is missing")
)

// Kind identifies the category of a resource. A resource never changes kind.
type Kind string

const (
	KindRoom      Kind = "ROOM"
	KindVehicle   Kind = "VEHICLE"
	KindEquipment Kind = "EQUIPMENT"
)

// Kinds lists all valid resource kinds.
var Kinds = []Kind{KindRoom, KindVehicle, KindEquipment}

// ValidKind reports whether k is a known resource kind.
func ValidKind(k Kind) bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// LifecycleStatus describes whether a resource can currently take bookings.
// Resources in maintenance or retired are never bookable.
type LifecycleStatus string

const (
	StatusAvailable   LifecycleStatus = "available"
	StatusMaintenance LifecycleStatus = "maintenance"
	StatusRetired     LifecycleStatus = "retired"
)

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s LifecycleStatus) bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

// Room holds the room-specific attributes of a resource.
type Room struct {
	Name     string
	Capacity int
	Status   LifecycleStatus
}

// Vehicle holds the vehicle-specific attributes of a resource.
type Vehicle struct {
	Brand  string
	Model  string
	Plate  string
	Status LifecycleStatus
}

// Equipment holds the equipment-specific attributes of a resource.
type Equipment struct {
	Name         string
	SerialNumber string
	Status       LifecycleStatus
}

// Detail is the kind-specific half of a resource. Exactly one field is set,
// matching the resource's Kind.
type Detail struct {
	Room      *Room
	Vehicle   *Vehicle
	Equipment *Equipment
}

// Resource is a bookable entity with exclusive-occupancy semantics. Resources
// of different kinds share the id space via the resources indirection table;
// the kind-specific attributes live in a separate detail record.
type Resource struct {
	ID        string
	Kind      Kind
	CreatedAt time.Time
	Detail    Detail
}

// Status returns the lifecycle status from the detail record, or retired when
// the detail record is missing (such a resource must never be bookable).
func (r *Resource) Status() LifecycleStatus {
	switch {
	case r.Detail.Room != nil:
		return r.Detail.Room.Status
	case r.Detail.Vehicle != nil:
		return r.Detail.Vehicle.Status
	case r.Detail.Equipment != nil:
		return r.Detail.Equipment.Status
	}
	return StatusRetired
}

// DisplayName returns a human-readable identifier for the resource.
func (r *Resource) DisplayName() string {
	switch {
	case r.Detail.Room != nil:
		return r.Detail.Room.Name
	case r.Detail.Vehicle != nil:
		return r.Detail.Vehicle.Brand + " " + r.Detail.Vehicle.Model
	case r.Detail.Equipment != nil:
		return r.Detail.Equipment.Name
	}
	return r.ID
}

// Filter defines parameters for listing resources.
type Filter struct {
	Kind           Kind
	IncludeRetired bool
}
