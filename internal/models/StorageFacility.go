// internal/models/storage_facility.go
package models

import (
	"gorm.io/gorm"
)

// StorageFacility is a municipal impound lot where vehicles are held.
type StorageFacility struct {
	gorm.Model

	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`

	// Location stored as a WKB-encoded point (SRID 4326).
	// When creating, provide GeoJSON; migrations define the column type appropriately.
	Location []byte `gorm:"type:bytea" json:"-"`

	Vehicles []Vehicle `gorm:"foreignKey:FacilityID" json:"vehicles,omitempty"`
}
