// internal/models/procedure.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// ProcedureType identifies the administrative case opened against a vehicle.
type ProcedureType string

const (
	ProcedureRelease     ProcedureType = "release"
	ProcedureSale        ProcedureType = "sale"
	ProcedureDestruction ProcedureType = "destruction"
)

// ProcedureStatus follows pending -> in_progress -> completed/cancelled.
// completed and cancelled are terminal.
type ProcedureStatus string

const (
	ProcedurePending    ProcedureStatus = "pending"
	ProcedureInProgress ProcedureStatus = "in_progress"
	ProcedureCompleted  ProcedureStatus = "completed"
	ProcedureCancelled  ProcedureStatus = "cancelled"
)

type Procedure struct {
	gorm.Model
	VehicleID   uint            `json:"vehicle_id" gorm:"index;not null"`
	Type        ProcedureType   `json:"type" gorm:"type:varchar(16);not null"`
	Status      ProcedureStatus `json:"status" gorm:"type:varchar(16);index;default:'pending'"`
	Cost        int64           `json:"cost"` // fee estimate at open time, minor units
	CreatedByID uint            `json:"created_by_id" gorm:"index"`

	CancelReason string     `json:"cancel_reason,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`

	Vehicle   *Vehicle            `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	CreatedBy *User               `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Documents []ProcedureDocument `gorm:"foreignKey:ProcedureID" json:"documents,omitempty"`
	Payments  []Payment           `gorm:"foreignKey:ProcedureID" json:"payments,omitempty"`
}

func (t ProcedureType) Valid() bool {
	switch t {
	case ProcedureRelease, ProcedureSale, ProcedureDestruction:
		return true
	}
	return false
}

func (s ProcedureStatus) Terminal() bool {
	return s == ProcedureCompleted || s == ProcedureCancelled
}

// VehicleOutcome is the terminal vehicle status a completed procedure implies.
func (t ProcedureType) VehicleOutcome() VehicleStatus {
	switch t {
	case ProcedureRelease:
		return VehicleClaimed
	case ProcedureSale:
		return VehicleSold
	case ProcedureDestruction:
		return VehicleDestroyed
	}
	return ""
}
