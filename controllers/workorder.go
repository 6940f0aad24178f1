package controllers

import (
	"errors"
	"log"
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

type WorkOrderItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type CreateWorkOrderInput struct {
	VehicleID     uuid.UUID            `json:"vehicleId" binding:"required"`
	ServiceID     *uuid.UUID           `json:"serviceId"`
	Date          *time.Time           `json:"date"`
	Mileage       int                  `json:"mileage"`
	Notes         string               `json:"notes"`
	ServiceDetail models.JSONB         `json:"serviceDetail"`
	Items         []WorkOrderItemInput `json:"items"`
}

type UpdateWorkOrderInput struct {
	Mileage       *int                  `json:"mileage"`
	Notes         *string               `json:"notes"`
	Status        *string               `json:"status"`
	ServiceDetail *models.JSONB         `json:"serviceDetail"`
	Items         *[]WorkOrderItemInput `json:"items"`
}

type DeliverWorkOrderInput struct {
	Mileage int `json:"mileage"`
}

// CreateWorkOrder opens a new work order for a vehicle
func CreateWorkOrder(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateWorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", input.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}
	detail := input.ServiceDetail
	if detail == nil {
		detail = models.JSONB{}
	}

	order := models.WorkOrder{
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		VehicleID:       input.VehicleID,
		ServiceID:       input.ServiceID,
		Date:            date,
		Mileage:         input.Mileage,
		Status:          models.WorkOrderOpen,
		Notes:           input.Notes,
		ServiceDetail:   detail,
		Items:           buildWorkOrderItems(input.Items),
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create work order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

func buildWorkOrderItems(inputs []WorkOrderItemInput) []models.WorkOrderItem {
	items := make([]models.WorkOrderItem, 0, len(inputs))
	for _, in := range inputs {
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, models.WorkOrderItem{
			Description: in.Description,
			Quantity:    qty,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  in.UnitPrice * float64(qty),
		})
	}
	return items
}

// GetWorkOrders lists work orders, optionally filtered by vehicle or status
func GetWorkOrders(c *gin.Context) {
	query := config.DB.Preload("Items").Preload("Service").Preload("Vehicle")

	if vehicleID := c.Query("vehicleId"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.WorkOrder
	if err := query.Order("date DESC").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve work orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetWorkOrder retrieves a specific work order
func GetWorkOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid work order ID format")
		return
	}

	var order models.WorkOrder
	if err := config.DB.Preload("Items").Preload("Service").Preload("Vehicle").
		First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Work order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateWorkOrder updates an open work order
func UpdateWorkOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid work order ID format")
		return
	}

	var input UpdateWorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order models.WorkOrder
	if err := tx.Preload("Items").First(&order, "id = ?", orderUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Work order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.Status == models.WorkOrderDelivered || order.Status == models.WorkOrderCancelled {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Work order is already closed")
		return
	}

	if input.Mileage != nil {
		order.Mileage = *input.Mileage
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if input.Status != nil {
		if *input.Status != models.WorkOrderOpen && *input.Status != models.WorkOrderInProgress &&
			*input.Status != models.WorkOrderCancelled {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status; use the deliver endpoint to close")
			return
		}
		order.Status = *input.Status
	}
	if input.ServiceDetail != nil {
		order.ServiceDetail = *input.ServiceDetail
	}

	if input.Items != nil {
		if err := tx.Where("work_order_id = ?", order.ID).Delete(&models.WorkOrderItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}
		items := buildWorkOrderItems(*input.Items)
		for i := range items {
			items[i].WorkOrderID = order.ID
		}
		order.Items = items
	}

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update work order")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, order)
}

// DeliverWorkOrder closes a work order with its final mileage and triggers
// the vehicle projection recompute. The projection is a best-effort
// enrichment: its failure is logged, never returned.
func DeliverWorkOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid work order ID format")
		return
	}

	var input DeliverWorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.WorkOrder
	if err := config.DB.First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Work order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.Status == models.WorkOrderDelivered {
		utils.RespondWithError(c, http.StatusConflict, "Work order already delivered")
		return
	}

	if input.Mileage > 0 {
		order.Mileage = input.Mileage
	}
	order.Status = models.WorkOrderDelivered

	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deliver work order")
		return
	}

	if order.Mileage > 0 {
		updateVehicleProjection(order)
	}

	c.JSON(http.StatusOK, order)
}

// updateVehicleProjection recomputes the vehicle's average daily distance
// and predicted next-service date from the latest mileage delta.
func updateVehicleProjection(order models.WorkOrder) {
	now := time.Now()

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", order.VehicleID).Error; err != nil {
		log.Printf("Projection skipped, vehicle %s lookup failed: %v", order.VehicleID, err)
		return
	}

	// Most recent previous delivered order with known mileage, excluding the
	// one just completed.
	var previous models.WorkOrder
	var prev *maintenance.PreviousService
	err := config.DB.
		Where("vehicle_id = ? AND status = ? AND mileage > 0 AND id <> ?",
			order.VehicleID, models.WorkOrderDelivered, order.ID).
		Order("date DESC").
		First(&previous).Error
	if err == nil {
		prev = &maintenance.PreviousService{Date: previous.Date, Mileage: previous.Mileage}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Projection skipped, history lookup failed for vehicle %s: %v", order.VehicleID, err)
		return
	}

	projection := maintenance.Project(maintenance.DefaultProjectionConfig(), now, prev, order.Mileage, vehicle.AverageDailyKm)

	updates := map[string]interface{}{
		"mileage":                order.Mileage,
		"last_service_date":      now,
		"last_service_mileage":   order.Mileage,
		"average_daily_km":       projection.AverageDailyKm,
		"predicted_next_service": projection.PredictedNextService,
	}
	if err := config.DB.Model(&vehicle).Updates(updates).Error; err != nil {
		log.Printf("Failed to persist projection for vehicle %s: %v", vehicle.ID, err)
	}
}
