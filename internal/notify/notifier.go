// Package notify records owner notifications and hands them to an external
// channel provider, best effort. A dispatch failure marks the row failed and
// is never surfaced to the caller; re-sending is a manual operator action.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"impound_manager/internal/models"
)

// Dispatcher is the external SMS/email provider boundary.
type Dispatcher interface {
	Send(ctx context.Context, channel models.NotificationChannel, recipient, message string) error
}

// LogDispatcher stands in when no provider is configured; it logs the message
// and reports success.
type LogDispatcher struct{}

func (LogDispatcher) Send(ctx context.Context, channel models.NotificationChannel, recipient, message string) error {
	logrus.WithFields(logrus.Fields{
		"channel":   channel,
		"recipient": recipient,
	}).Info("notification dispatched (log only): " + message)
	return nil
}

type Notifier struct {
	db         *gorm.DB
	dispatcher Dispatcher
}

func NewNotifier(db *gorm.DB, dispatcher Dispatcher) *Notifier {
	if dispatcher == nil {
		dispatcher = LogDispatcher{}
	}
	return &Notifier{db: db, dispatcher: dispatcher}
}

// VehicleStatusChanged implements lifecycle.StatusNotifier. Fire and forget:
// the row is written pending, then sent in a goroutine.
func (n *Notifier) VehicleStatusChanged(vehicle models.Vehicle, procedure models.Procedure) {
	if vehicle.OwnerID == nil {
		return // no one to tell
	}

	var owner models.Owner
	if err := n.db.First(&owner, *vehicle.OwnerID).Error; err != nil {
		logrus.WithError(err).WithField("owner_id", *vehicle.OwnerID).
			Warn("notify: owner lookup failed")
		return
	}

	channel := models.ChannelSMS
	recipient := owner.Phone
	if recipient == "" && owner.Email != nil {
		channel = models.ChannelEmail
		recipient = *owner.Email
	}
	if recipient == "" {
		return
	}

	message := fmt.Sprintf(
		"Vehicle %s: %s procedure completed, vehicle status is now %s.",
		vehicle.LicensePlate, procedure.Type, vehicle.Status,
	)

	notification := models.Notification{
		OwnerID:   owner.ID,
		Type:      models.NotifyImpoundNotice,
		Channel:   channel,
		Recipient: recipient,
		Message:   message,
		Status:    models.NotificationPending,
	}
	if err := n.db.Create(&notification).Error; err != nil {
		logrus.WithError(err).Warn("notify: could not record notification")
		return
	}

	go n.deliver(notification.ID)
}

// DeadlineWarning tells an owner their vehicle has been held past the legal
// notice delay. Same fire-and-forget path as status changes.
func (n *Notifier) DeadlineWarning(owner models.Owner, vehicle models.Vehicle, daysHeld int64) {
	channel := models.ChannelSMS
	recipient := owner.Phone
	if recipient == "" && owner.Email != nil {
		channel = models.ChannelEmail
		recipient = *owner.Email
	}
	if recipient == "" {
		return
	}

	notification := models.Notification{
		OwnerID:   owner.ID,
		Type:      models.NotifyDeadlineWarning,
		Channel:   channel,
		Recipient: recipient,
		Message: fmt.Sprintf(
			"Vehicle %s has been impounded for %d days. Storage fees continue to accrue; please regularize its situation.",
			vehicle.LicensePlate, daysHeld,
		),
		Status: models.NotificationPending,
	}
	if err := n.db.Create(&notification).Error; err != nil {
		logrus.WithError(err).Warn("notify: could not record deadline warning")
		return
	}
	go n.deliver(notification.ID)
}

// Resend re-dispatches a single notification by ID; used by the manual
// re-trigger endpoint. Only pending or failed rows are resent.
func (n *Notifier) Resend(id uint) error {
	var notification models.Notification
	if err := n.db.First(&notification, id).Error; err != nil {
		return err
	}
	if notification.Status == models.NotificationSent {
		return fmt.Errorf("notify: notification %d already sent", id)
	}
	n.deliver(id)
	return nil
}

func (n *Notifier) deliver(id uint) {
	var notification models.Notification
	if err := n.db.First(&notification, id).Error; err != nil {
		logrus.WithError(err).WithField("notification_id", id).Warn("notify: load for delivery failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status := models.NotificationSent
	err := n.dispatcher.Send(ctx, notification.Channel, notification.Recipient, notification.Message)
	if err != nil {
		status = models.NotificationFailed
		logrus.WithError(err).WithField("notification_id", id).Warn("notify: dispatch failed")
	}

	now := time.Now()
	updates := map[string]any{"status": status}
	if status == models.NotificationSent {
		updates["sent_at"] = &now
	}
	if err := n.db.Model(&models.Notification{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		logrus.WithError(err).WithField("notification_id", id).Warn("notify: status update failed")
	}
}
