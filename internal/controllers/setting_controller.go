package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"impound_manager/internal/config"
	"impound_manager/internal/models"
)

// ListSettings returns all settings, optionally filtered by ?group=.
func ListSettings(c *gin.Context) {
	query := config.DB
	if group := c.Query("group"); group != "" {
		query = query.Where("grp = ?", group)
	}

	var rows []models.Setting
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// UpdateSetting writes a setting through the store so the cached value is
// invalidated in the same call.
func UpdateSetting(c *gin.Context) {
	var input struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
		Group string `json:"group"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Settings.Set(input.Key, input.Value, input.Group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save setting: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{"key": input.Key}).Info("setting updated")
	c.JSON(http.StatusOK, gin.H{"setting": gin.H{"key": input.Key, "value": input.Value, "group": input.Group}})
}
