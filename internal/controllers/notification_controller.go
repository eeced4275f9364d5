package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"impound_manager/internal/config"
	"impound_manager/internal/fees"
	"impound_manager/internal/models"
)

// ListNotifications supports optional ?status= and ?owner_id= filters.
func ListNotifications(c *gin.Context) {
	query := config.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if owner := c.Query("owner_id"); owner != "" {
		query = query.Where("owner_id = ?", owner)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing notifications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

// SendDeadlineWarnings notifies owners of every vehicle held longer than the
// configured legal notice delay. Triggered manually by an agent; there is no
// scheduler.
func SendDeadlineWarnings(c *gin.Context) {
	delay, err := Settings.LegalNoticeDelayDays()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load legal notice delay"})
		return
	}

	cutoff := time.Now().Add(-time.Duration(delay) * 24 * time.Hour)

	var vehicles []models.Vehicle
	if err := config.DB.Preload("Owner").
		Where("status = ? AND impounded_at <= ? AND owner_id IS NOT NULL", models.VehicleImpounded, cutoff).
		Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing overdue vehicles: " + err.Error()})
		return
	}

	warned := 0
	for _, v := range vehicles {
		if v.Owner == nil {
			continue
		}
		daysHeld := fees.DaysImpounded(v.ImpoundedAt, time.Now())
		Notifier.DeadlineWarning(*v.Owner, v, daysHeld)
		warned++
	}

	logrus.WithField("count", warned).Info("deadline warnings queued")
	c.JSON(http.StatusOK, gin.H{"warned": warned})
}

// ResendNotification manually re-triggers a pending or failed notification.
// There is no automatic retry loop.
func ResendNotification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := Notifier.Resend(id); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification re-sent"})
}
