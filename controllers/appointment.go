package controllers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"lubripro-backend/config"
	"lubripro-backend/models"
	"lubripro-backend/scheduling"
	"lubripro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestData lazily materializes client/vehicle records for walk-in bookings
// that arrive without existing references.
type GuestData struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Plate string `json:"plate"`
	Model string `json:"model"`
}

type CreateAppointmentInput struct {
	ClientID   *uuid.UUID `json:"clientId"`
	VehicleID  *uuid.UUID `json:"vehicleId"`
	ServiceID  uuid.UUID  `json:"serviceId" binding:"required"`
	Date       time.Time  `json:"date" binding:"required"`
	Force      bool       `json:"force"`
	Notes      string     `json:"notes"`
	LeadCaseID *uuid.UUID `json:"leadCaseId"`
	Guest      *GuestData `json:"guest"`
}

type UpdateAppointmentStatusInput struct {
	Status string `json:"status" binding:"required"`
}

var validAppointmentStatuses = map[string]bool{
	models.AppointmentRequested:  true,
	models.AppointmentConfirmed:  true,
	models.AppointmentTodayQueue: true,
	models.AppointmentDone:       true,
	models.AppointmentCancelled:  true,
	models.AppointmentNoShow:     true,
}

// CreateAppointment validates a proposed booking against business hours and
// existing bookings, then commits it. The conflict check and the insert run
// inside one serializable transaction so two concurrent requests cannot both
// pass the overlap scan.
func CreateAppointment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	clientID, vehicleID, err := resolveBookingParties(input, userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	cfg := SchedulingConfig
	duration := cfg.ResolveDuration(service.Duration)

	appointment := models.Appointment{
		CreatedByUserID: userUUID,
		Date:            input.Date,
		ServiceID:       service.ID,
		ClientID:        clientID,
		VehicleID:       vehicleID,
		Status:          models.AppointmentRequested,
		Notes:           input.Notes,
		LeadCaseID:      input.LeadCaseID,
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if !input.Force {
			from, to := cfg.SearchRange(input.Date, duration)

			var candidates []models.Appointment
			if err := tx.Preload("Service").
				Where("date >= ? AND date < ? AND status <> ?", from, to, models.AppointmentCancelled).
				Find(&candidates).Error; err != nil {
				return err
			}

			existing := make([]scheduling.Booking, 0, len(candidates))
			for _, a := range candidates {
				existing = append(existing, scheduling.Booking{
					Start:       a.Date,
					Duration:    cfg.ResolveDuration(a.Service.Duration),
					ServiceName: a.Service.Name,
				})
			}

			if err := cfg.Validate(input.Date, duration, existing, false); err != nil {
				return err
			}
		}

		return tx.Create(&appointment).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if txErr != nil {
		var hours *scheduling.ErrOutsideHours
		var conflict *scheduling.Conflict
		switch {
		case errors.As(txErr, &hours):
			utils.RespondWithError(c, http.StatusConflict, hours.Error())
		case errors.As(txErr, &conflict):
			utils.RespondWithError(c, http.StatusConflict, conflict.Error())
		default:
			// Serialization failures from a concurrent booking land here too;
			// the client simply retries.
			log.Printf("Appointment commit failed: %v", txErr)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		}
		return
	}

	// Best-effort side effects; the booking already committed so neither may
	// fail the request.
	if appointment.LeadCaseID == nil && Leads != nil {
		var client models.Client
		if err := config.DB.First(&client, "id = ?", clientID).Error; err == nil {
			if caseID := Leads.CreateFromAppointment(appointment, service, client); caseID != nil {
				if err := config.DB.Model(&appointment).Update("lead_case_id", caseID).Error; err != nil {
					log.Printf("Failed to link lead case to appointment %s: %v", appointment.ID, err)
				}
			}
		}
	}
	if WhatsApp != nil {
		appt := appointment
		appt.Service = service
		go WhatsApp.SendAppointmentConfirmation(appt)
	}

	c.JSON(http.StatusCreated, appointment)
}

// resolveBookingParties returns the client/vehicle pair for a booking,
// materializing records from guest data when references are missing.
func resolveBookingParties(input CreateAppointmentInput, userID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	if input.ClientID != nil && input.VehicleID != nil {
		return *input.ClientID, *input.VehicleID, nil
	}
	if input.Guest == nil {
		return uuid.Nil, uuid.Nil, errors.New("clientId and vehicleId are required unless guest data is provided")
	}
	if input.Guest.Name == "" || !utils.ValidatePhone(input.Guest.Phone) {
		return uuid.Nil, uuid.Nil, errors.New("guest name and a valid phone are required")
	}
	if !utils.ValidatePlate(input.Guest.Plate) {
		return uuid.Nil, uuid.Nil, errors.New("guest plate is required")
	}

	// Reuse an existing client by phone, else create one.
	var client models.Client
	err := config.DB.Where("phone = ?", input.Guest.Phone).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		client = models.Client{
			CreatedByUserID: userID,
			Name:            input.Guest.Name,
			Phone:           input.Guest.Phone,
			Source:          "booking",
			IsActive:        true,
		}
		err = config.DB.Create(&client).Error
	}
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("failed to materialize guest client")
	}

	plate := utils.NormalizePlate(input.Guest.Plate)
	var vehicle models.Vehicle
	err = config.DB.Where("plate = ?", plate).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		vehicle = models.Vehicle{
			ClientID:       client.ID,
			Plate:          plate,
			Model:          input.Guest.Model,
			AverageDailyKm: 30,
		}
		err = config.DB.Create(&vehicle).Error
	}
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("failed to materialize guest vehicle")
	}

	return client.ID, vehicle.ID, nil
}

// GetAppointments lists appointments for a day or an explicit range
func GetAppointments(c *gin.Context) {
	query := config.DB.Preload("Service").Preload("Client").Preload("Vehicle")

	if day := c.Query("date"); day != "" {
		parsed, err := time.ParseInLocation("2006-01-02", day, SchedulingConfig.Location)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date >= ? AND date < ?", utils.BeginningOfDay(parsed), utils.EndOfDay(parsed))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if vehicleID := c.Query("vehicleId"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var appointments []models.Appointment
	if err := query.Order("date ASC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// UpdateAppointmentStatus applies a staff status transition. Appointments
// are never deleted; cancellation is a transition like any other.
func UpdateAppointmentStatus(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !validAppointmentStatuses[input.Status] {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown appointment status")
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", appointmentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&appointment).Update("status", input.Status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	appointment.Status = input.Status
	c.JSON(http.StatusOK, appointment)
}
