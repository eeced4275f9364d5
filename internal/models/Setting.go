// internal/models/setting.go
package models

import "time"

// Setting is a key/value row for tunable business parameters (storage rate,
// administrative fees, legal notice delay). Values are opaque strings.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value"`
	Group     string    `json:"group" gorm:"column:grp;index"`
	UpdatedAt time.Time `json:"updated_at"`
}
