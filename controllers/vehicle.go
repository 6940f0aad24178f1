package controllers

import (
	"errors"
	"net/http"
	"time"

	"lubripro-backend/config"
	"lubripro-backend/maintenance"
	"lubripro-backend/models"
	"lubripro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateVehicleInput defines the expected JSON structure for creating a vehicle
type CreateVehicleInput struct {
	ClientID uuid.UUID `json:"clientId" binding:"required"`
	Plate    string    `json:"plate" binding:"required"`
	Brand    string    `json:"brand"`
	Model    string    `json:"model"`
	Year     int       `json:"year"`
	Mileage  int       `json:"mileage"`
}

// UpdateVehicleInput defines the expected JSON structure for updating a vehicle
type UpdateVehicleInput struct {
	Brand   *string `json:"brand"`
	Model   *string `json:"model"`
	Year    *int    `json:"year"`
	Mileage *int    `json:"mileage"`
}

// CreateVehicle creates a new vehicle for a client
func CreateVehicle(c *gin.Context) {
	var input CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePlate(input.Plate) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid plate format")
		return
	}
	plate := utils.NormalizePlate(input.Plate)

	// Owner must exist
	var client models.Client
	if err := config.DB.First(&client, "id = ?", input.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var existing models.Vehicle
	if err := config.DB.Where("plate = ?", plate).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Vehicle with this plate already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	vehicle := models.Vehicle{
		ClientID:       input.ClientID,
		Plate:          plate,
		Brand:          input.Brand,
		Model:          input.Model,
		Year:           input.Year,
		Mileage:        input.Mileage,
		AverageDailyKm: 30,
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles retrieves vehicles, optionally filtered by client or plate
func GetVehicles(c *gin.Context) {
	query := config.DB.Model(&models.Vehicle{})

	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if plate := c.Query("plate"); plate != "" {
		query = query.Where("plate = ?", utils.NormalizePlate(plate))
	}

	var vehicles []models.Vehicle
	if err := query.Find(&vehicles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle retrieves a specific vehicle by ID
func GetVehicle(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle updates an existing vehicle. Projection fields are not
// editable here; they are recomputed when work orders are delivered.
func UpdateVehicle(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var input UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Brand != nil {
		vehicle.Brand = *input.Brand
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Mileage != nil {
		vehicle.Mileage = *input.Mileage
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// GetVehicleMaintenance runs the maintenance inference engine over the
// vehicle's delivered work-order history and returns the per-item rollup.
func GetVehicleMaintenance(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var orders []models.WorkOrder
	if err := config.DB.Preload("Items").Preload("Service").
		Where("vehicle_id = ? AND status = ?", vehicleUUID, models.WorkOrderDelivered).
		Order("date DESC").
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service history")
		return
	}

	report := maintenance.Evaluate(maintenance.DefaultConfig(), time.Now(), recordsFromWorkOrders(orders))

	c.JSON(http.StatusOK, gin.H{
		"vehicle":     vehicle,
		"maintenance": report,
	})
}

// recordsFromWorkOrders maps persisted work orders into the engine's input
// shape.
func recordsFromWorkOrders(orders []models.WorkOrder) []maintenance.Record {
	records := make([]maintenance.Record, 0, len(orders))
	for _, order := range orders {
		rec := maintenance.Record{
			Date:    order.Date,
			Mileage: order.Mileage,
			Notes:   order.Notes,
			Detail:  order.ServiceDetail,
		}
		if order.Service != nil {
			rec.ServiceName = order.Service.Name
		}
		for _, item := range order.Items {
			rec.LineItems = append(rec.LineItems, item.Description)
		}
		records = append(records, rec)
	}
	return records
}
