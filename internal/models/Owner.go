// internal/models/owner.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type IDDocumentType string

const (
	DocNationalID     IDDocumentType = "national_id"
	DocPassport       IDDocumentType = "passport"
	DocDriversLicense IDDocumentType = "drivers_license"
)

// Owner is the registered holder of one or more impounded vehicles.
type Owner struct {
	gorm.Model
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     string  `json:"phone" gorm:"uniqueIndex;not null"`
	Email     *string `json:"email,omitempty" gorm:"uniqueIndex"`
	Address   string  `json:"address"`

	IDDocumentType   IDDocumentType `json:"id_document_type" gorm:"type:varchar(24)"`
	IDDocumentNumber string         `json:"id_document_number" gorm:"uniqueIndex;not null"`
	IDDocumentExpiry *time.Time     `json:"id_document_expiry,omitempty"`

	Vehicles []Vehicle `gorm:"foreignKey:OwnerID" json:"vehicles,omitempty"`
}

func (t IDDocumentType) Valid() bool {
	switch t {
	case DocNationalID, DocPassport, DocDriversLicense:
		return true
	}
	return false
}
