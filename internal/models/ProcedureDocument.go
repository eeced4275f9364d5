// internal/models/procedure_document.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// ProcedureDocument references a file held in object storage; only the path
// is stored here.
type ProcedureDocument struct {
	gorm.Model
	ProcedureID uint      `json:"procedure_id" gorm:"index;not null"`
	Type        string    `json:"type"` // e.g. "release_order", "sale_notice", "owner_id_copy"
	FilePath    string    `json:"file_path" gorm:"not null"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
