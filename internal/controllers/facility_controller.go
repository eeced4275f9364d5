package controllers

import (
	"encoding/binary"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"impound_manager/internal/config"
	"impound_manager/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// FacilityResponse mirrors models.StorageFacility but carries the location
// as a GeoJSON string for API output.
type FacilityResponse struct {
	ID        uint           `json:"ID"`
	CreatedAt time.Time      `json:"CreatedAt"`
	UpdatedAt time.Time      `json:"UpdatedAt"`
	DeletedAt gorm.DeletedAt `json:"DeletedAt,omitempty"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Capacity  int            `json:"capacity"`
	Location  string         `json:"location"` // GeoJSON point
}

func toFacilityResponse(f models.StorageFacility) FacilityResponse {
	jsonLoc, _ := convertWKBToGeoJSON(f.Location)
	return FacilityResponse{
		ID:        f.ID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		DeletedAt: f.DeletedAt,
		Name:      f.Name,
		Address:   f.Address,
		Capacity:  f.Capacity,
		Location:  jsonLoc,
	}
}

// parseAndConvertLocation parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertLocation(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateFacility registers an impound lot. Location arrives as a GeoJSON
// point and is stored as WKB.
func CreateFacility(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Address  string `json:"address"`
		Capacity int    `json:"capacity"`
		Location string `json:"location"` // GeoJSON point
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	loc, err := parseAndConvertLocation(input.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location GeoJSON: " + err.Error()})
		return
	}

	facility := models.StorageFacility{
		Name:     input.Name,
		Address:  input.Address,
		Capacity: input.Capacity,
		Location: loc,
	}
	if err := config.DB.Create(&facility).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create facility: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"facility": toFacilityResponse(facility)})
}

func GetFacility(c *gin.Context) {
	id := c.Param("id")
	var facility models.StorageFacility
	if err := config.DB.Preload("Vehicles").First(&facility, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}
	resp := toFacilityResponse(facility)
	c.JSON(http.StatusOK, gin.H{"facility": resp, "vehicles": facility.Vehicles})
}

func ListFacilities(c *gin.Context) {
	var facilities []models.StorageFacility
	if err := config.DB.Find(&facilities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch facilities"})
		return
	}
	out := make([]FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, toFacilityResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// UpdateFacility modifies an existing facility.
func UpdateFacility(c *gin.Context) {
	id := c.Param("id")
	var facility models.StorageFacility
	if err := config.DB.First(&facility, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Address  *string `json:"address"`
		Capacity *int    `json:"capacity"`
		Location *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		facility.Name = *input.Name
	}
	if input.Address != nil {
		facility.Address = *input.Address
	}
	if input.Capacity != nil {
		facility.Capacity = *input.Capacity
	}
	if input.Location != nil {
		loc, err := parseAndConvertLocation(*input.Location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location GeoJSON: " + err.Error()})
			return
		}
		facility.Location = loc
	}

	config.DB.Save(&facility)
	c.JSON(http.StatusOK, gin.H{"facility": toFacilityResponse(facility)})
}

// DeleteFacility removes a facility; vehicles keep their rows but lose the
// facility link.
func DeleteFacility(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.StorageFacility{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete facility"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Facility deleted"})
}
