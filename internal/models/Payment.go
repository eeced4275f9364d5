// internal/models/payment.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PayCash         PaymentMethod = "cash"
	PayBankTransfer PaymentMethod = "bank_transfer"
	PayMobileMoney  PaymentMethod = "mobile_money"
)

// Payment is an append-only ledger entry against a procedure's cost.
// Rows are never updated or deleted once written.
type Payment struct {
	gorm.Model
	ProcedureID uint          `json:"procedure_id" gorm:"index;not null"`
	VehicleID   uint          `json:"vehicle_id" gorm:"index"`
	OwnerID     *uint         `json:"owner_id" gorm:"index"`
	Amount      int64         `json:"amount" gorm:"not null"` // minor units, > 0
	Method      PaymentMethod `json:"method" gorm:"type:varchar(16);not null"`
	Reference   string        `json:"reference" gorm:"index"`
	PaidAt      time.Time     `json:"paid_at"`

	Procedure *Procedure `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`
	Owner     *Owner     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayBankTransfer, PayMobileMoney:
		return true
	}
	return false
}
