// internal/models/vehicle.go
package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// VehicleType is persisted as a string so the API keeps stable wire values.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleTruck      VehicleType = "truck"
	VehicleOther      VehicleType = "other"
)

// VehicleStatus tracks where a vehicle sits in the impound lifecycle.
// claimed, sold and destroyed are terminal.
type VehicleStatus string

const (
	VehicleImpounded          VehicleStatus = "impounded"
	VehicleClaimed            VehicleStatus = "claimed"
	VehicleSold               VehicleStatus = "sold"
	VehicleDestroyed          VehicleStatus = "destroyed"
	VehiclePendingDestruction VehicleStatus = "pending_destruction"
)

type Vehicle struct {
	gorm.Model
	LicensePlate   string        `json:"license_plate" gorm:"uniqueIndex;not null"`
	Make           string        `json:"make"`
	VehicleModel   string        `json:"model" gorm:"column:model"`
	Color          string        `json:"color"`
	Year           int           `json:"year"`
	Type           VehicleType   `json:"type" gorm:"type:varchar(16);default:'car'"`
	Status         VehicleStatus `json:"status" gorm:"type:varchar(24);index;default:'impounded'"`
	ImpoundedAt    time.Time     `json:"impounded_at"`
	FacilityID     *uint         `json:"facility_id" gorm:"index"` // storage location
	OwnerID        *uint         `json:"owner_id" gorm:"index"`
	EstimatedValue int64         `json:"estimated_value"` // minor currency units
	// Photos holds object-storage paths only; the blobs live elsewhere.
	Photos pq.StringArray `json:"photos" gorm:"type:text[]"`

	Owner      *Owner      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Procedures []Procedure `gorm:"foreignKey:VehicleID" json:"procedures,omitempty"`
}

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleCar, VehicleMotorcycle, VehicleTruck, VehicleOther:
		return true
	}
	return false
}

func (s VehicleStatus) Terminal() bool {
	switch s {
	case VehicleClaimed, VehicleSold, VehicleDestroyed:
		return true
	}
	return false
}
