// internal/models/notification.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifyImpoundNotice   NotificationType = "impound_notice"
	NotifyDeadlineWarning NotificationType = "deadline_warning"
	NotifyPaymentReminder NotificationType = "payment_reminder"
)

type NotificationChannel string

const (
	ChannelSMS   NotificationChannel = "sms"
	ChannelEmail NotificationChannel = "email"
)

// NotificationStatus: created pending, flipped to sent or failed once the
// external provider has been asked to deliver. No automatic retry; a failed
// row is re-sent only by an explicit operator action.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

type Notification struct {
	gorm.Model
	OwnerID   uint                `json:"owner_id" gorm:"index;not null"`
	Type      NotificationType    `json:"type" gorm:"type:varchar(24);not null"`
	Channel   NotificationChannel `json:"channel" gorm:"type:varchar(8);not null"`
	Recipient string              `json:"recipient"` // phone or email at send time
	Message   string              `json:"message"`
	Status    NotificationStatus  `json:"status" gorm:"type:varchar(8);index;default:'pending'"`
	SentAt    *time.Time          `json:"sent_at,omitempty"`

	Owner *Owner `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
