package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"impound_manager/internal/config"
	"impound_manager/internal/models"
)

// CreateVehicle registers an impound intake. Status always starts at
// impounded; the impound timestamp defaults to now when not supplied.
func CreateVehicle(c *gin.Context) {
	var input struct {
		LicensePlate   string             `json:"license_plate" binding:"required"`
		Make           string             `json:"make"`
		Model          string             `json:"model"`
		Color          string             `json:"color"`
		Year           int                `json:"year"`
		Type           models.VehicleType `json:"type"`
		ImpoundedAt    *time.Time         `json:"impounded_at"`
		FacilityID     *uint              `json:"facility_id"`
		OwnerID        *uint              `json:"owner_id"`
		EstimatedValue int64              `json:"estimated_value"`
		Photos         []string           `json:"photos"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	if input.Type == "" {
		input.Type = models.VehicleCar
	}
	if !input.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle type"})
		return
	}

	impoundedAt := time.Now()
	if input.ImpoundedAt != nil {
		impoundedAt = *input.ImpoundedAt
	}

	vehicle := models.Vehicle{
		LicensePlate:   input.LicensePlate,
		Make:           input.Make,
		VehicleModel:   input.Model,
		Color:          input.Color,
		Year:           input.Year,
		Type:           input.Type,
		Status:         models.VehicleImpounded,
		ImpoundedAt:    impoundedAt,
		FacilityID:     input.FacilityID,
		OwnerID:        input.OwnerID,
		EstimatedValue: input.EstimatedValue,
		Photos:         pq.StringArray(input.Photos),
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "license plate already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"vehicle_id": vehicle.ID,
		"plate":      vehicle.LicensePlate,
	}).Info("vehicle impounded")

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func GetVehicle(c *gin.Context) {
	id := c.Param("id")
	var vehicle models.Vehicle
	if err := config.DB.Preload("Owner").Preload("Procedures").First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// ListVehicles supports optional ?status= and ?facility_id= filters.
func ListVehicles(c *gin.Context) {
	query := config.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if facility := c.Query("facility_id"); facility != "" {
		query = query.Where("facility_id = ?", facility)
	}

	var vehicles []models.Vehicle
	if err := query.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// UpdateVehicle edits descriptive fields only. Status never changes here;
// that path is OverrideVehicleStatus or procedure completion.
func UpdateVehicle(c *gin.Context) {
	id := c.Param("id")
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var input struct {
		Make           *string  `json:"make"`
		Model          *string  `json:"model"`
		Color          *string  `json:"color"`
		Year           *int     `json:"year"`
		FacilityID     *uint    `json:"facility_id"`
		OwnerID        *uint    `json:"owner_id"`
		EstimatedValue *int64   `json:"estimated_value"`
		Photos         []string `json:"photos"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.VehicleModel = *input.Model
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.FacilityID != nil {
		vehicle.FacilityID = input.FacilityID
	}
	if input.OwnerID != nil {
		vehicle.OwnerID = input.OwnerID
	}
	if input.EstimatedValue != nil {
		vehicle.EstimatedValue = *input.EstimatedValue
	}
	if input.Photos != nil {
		vehicle.Photos = pq.StringArray(input.Photos)
	}

	config.DB.Save(&vehicle)
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// OverrideVehicleStatus is the admin escape hatch; it still honors the
// transition table, so terminal vehicles stay terminal.
func OverrideVehicleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input struct {
		Status models.VehicleStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := Lifecycle.ApplyOutcome(c.Request.Context(), id, input.Status)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"vehicle_id": vehicle.ID,
		"status":     vehicle.Status,
	}).Info("vehicle status overridden")

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}
