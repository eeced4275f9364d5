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

// OpenProcedure opens an administrative case against an impounded vehicle.
// The fee estimate computed now becomes the procedure's cost.
func OpenProcedure(c *gin.Context) {
	var input struct {
		VehicleID uint                 `json:"vehicle_id" binding:"required"`
		Type      models.ProcedureType `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid procedure type"})
		return
	}

	creatorID := uint(c.MustGet("user_id").(float64))

	proc, err := Lifecycle.Open(c.Request.Context(), input.VehicleID, input.Type, creatorID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"procedure_id": proc.ID,
		"vehicle_id":   proc.VehicleID,
		"type":         proc.Type,
		"cost":         proc.Cost,
	}).Info("procedure opened")

	c.JSON(http.StatusCreated, gin.H{"procedure": proc})
}

func GetProcedure(c *gin.Context) {
	id := c.Param("id")
	var proc models.Procedure
	if err := config.DB.Preload("Vehicle").Preload("Documents").Preload("Payments").First(&proc, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Procedure not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"procedure": proc})
}

// ListProcedures supports optional ?status= and ?vehicle_id= filters.
func ListProcedures(c *gin.Context) {
	query := config.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if vehicle := c.Query("vehicle_id"); vehicle != "" {
		query = query.Where("vehicle_id = ?", vehicle)
	}

	var procs []models.Procedure
	if err := query.Find(&procs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing procedures: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": procs})
}

// AdvanceProcedure moves a pending procedure into in_progress.
func AdvanceProcedure(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	proc, err := Lifecycle.Advance(c.Request.Context(), id)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"procedure": proc})
}

// CancelProcedure abandons a non-terminal procedure. The vehicle keeps its
// current status.
func CancelProcedure(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	// Reason is optional; ignore a missing body.
	_ = c.ShouldBindJSON(&input)

	proc, err := Lifecycle.Cancel(c.Request.Context(), id, input.Reason)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"procedure": proc})
}

// CompleteProcedure closes an in_progress procedure once fully paid and
// applies the terminal vehicle status its type implies.
func CompleteProcedure(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	proc, err := Lifecycle.Complete(c.Request.Context(), id)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"procedure_id": proc.ID,
		"vehicle_id":   proc.VehicleID,
		"type":         proc.Type,
	}).Info("procedure completed")

	c.JSON(http.StatusOK, gin.H{"procedure": proc})
}

// QuoteProcedure returns a fresh fee breakdown for a vehicle as of now,
// without opening anything.
func QuoteProcedure(c *gin.Context) {
	var input struct {
		VehicleID uint                 `form:"vehicle_id" binding:"required"`
		Type      models.ProcedureType `form:"type" binding:"required"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid procedure type"})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, input.VehicleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	cfg, err := Settings.FeeConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load fee configuration"})
		return
	}
	breakdown, err := fees.Calculate(vehicle.ImpoundedAt, time.Now(), input.Type, cfg)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": breakdown})
}

// AttachDocument links an uploaded file (already in object storage) to a
// procedure.
func AttachDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input struct {
		Type     string `json:"type" binding:"required"`
		FilePath string `json:"file_path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var proc models.Procedure
	if err := config.DB.First(&proc, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Procedure not found"})
		return
	}

	doc := models.ProcedureDocument{
		ProcedureID: proc.ID,
		Type:        input.Type,
		FilePath:    input.FilePath,
		UploadedAt:  time.Now(),
	}
	if err := config.DB.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not attach document"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": doc})
}
