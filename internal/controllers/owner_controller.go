package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"impound_manager/internal/config"
	"impound_manager/internal/models"
)

// CreateOwner registers a vehicle owner.
func CreateOwner(c *gin.Context) {
	var input struct {
		FirstName        string                `json:"first_name" binding:"required"`
		LastName         string                `json:"last_name" binding:"required"`
		Phone            string                `json:"phone" binding:"required"`
		Email            *string               `json:"email"`
		Address          string                `json:"address"`
		IDDocumentType   models.IDDocumentType `json:"id_document_type" binding:"required"`
		IDDocumentNumber string                `json:"id_document_number" binding:"required"`
		IDDocumentExpiry *time.Time            `json:"id_document_expiry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.IDDocumentType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id document type"})
		return
	}

	owner := models.Owner{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Phone:            input.Phone,
		Email:            input.Email,
		Address:          input.Address,
		IDDocumentType:   input.IDDocumentType,
		IDDocumentNumber: input.IDDocumentNumber,
		IDDocumentExpiry: input.IDDocumentExpiry,
	}
	if err := config.DB.Create(&owner).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "phone, email or document number already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create owner: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"owner": owner})
}

// GetOwner retrieves an owner with their vehicles.
func GetOwner(c *gin.Context) {
	id := c.Param("id")
	var owner models.Owner
	if err := config.DB.Preload("Vehicles").First(&owner, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": owner})
}

func ListOwners(c *gin.Context) {
	var owners []models.Owner
	if err := config.DB.Find(&owners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch owners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": owners})
}

// UpdateOwner modifies owner contact details.
func UpdateOwner(c *gin.Context) {
	id := c.Param("id")
	var owner models.Owner
	if err := config.DB.First(&owner, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
		return
	}

	var input struct {
		FirstName *string    `json:"first_name"`
		LastName  *string    `json:"last_name"`
		Phone     *string    `json:"phone"`
		Email     *string    `json:"email"`
		Address   *string    `json:"address"`
		Expiry    *time.Time `json:"id_document_expiry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FirstName != nil {
		owner.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		owner.LastName = *input.LastName
	}
	if input.Phone != nil {
		owner.Phone = *input.Phone
	}
	if input.Email != nil {
		owner.Email = input.Email
	}
	if input.Address != nil {
		owner.Address = *input.Address
	}
	if input.Expiry != nil {
		owner.IDDocumentExpiry = input.Expiry
	}

	if err := config.DB.Save(&owner).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "phone or email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update owner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": owner})
}

func DeleteOwner(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Owner{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete owner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Owner deleted"})
}
