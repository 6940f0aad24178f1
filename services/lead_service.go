// services/lead_service.go
package services

import (
	"fmt"
	"log"
	"strings"

	"lubripro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadService struct {
	db *gorm.DB
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

// InferCategory maps a service category string to a lead-case category by
// keyword matching.
func InferCategory(serviceCategory string) string {
	lowered := strings.ToLower(serviceCategory)
	switch {
	case strings.Contains(lowered, "aceite") || strings.Contains(lowered, "lubric"):
		return models.LeadCategoryOilService
	case strings.Contains(lowered, "bater"):
		return models.LeadCategoryBattery
	case strings.Contains(lowered, "neum") || strings.Contains(lowered, "cubierta") ||
		strings.Contains(lowered, "goma") || strings.Contains(lowered, "gomer"):
		return models.LeadCategoryTyres
	default:
		return models.LeadCategoryOther
	}
}

// CreateFromAppointment auto-creates a tracking case summarizing a committed
// booking. Best effort: the booking already committed, so failures here are
// logged and swallowed.
func (s *LeadService) CreateFromAppointment(appt models.Appointment, service models.Service, client models.Client) *uuid.UUID {
	leadCase := models.LeadCase{
		ClientID:        &appt.ClientID,
		VehicleID:       &appt.VehicleID,
		CreatedByUserID: appt.CreatedByUserID,
		Category:        InferCategory(service.Category),
		Status:          models.LeadScheduled,
		Summary: fmt.Sprintf("Turno %s - %s (%s)",
			service.Name, client.Name, appt.Date.Format("02/01 15:04")),
		ContactName:  client.Name,
		ContactPhone: client.Phone,
	}

	if err := s.db.Create(&leadCase).Error; err != nil {
		log.Printf("Failed to auto-create lead case for appointment %s: %v", appt.ID, err)
		return nil
	}

	entry := models.LeadLog{
		LeadCaseID: leadCase.ID,
		UserID:     appt.CreatedByUserID,
		Entry:      "Caso creado automáticamente al reservar el turno",
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log lead case %s creation: %v", leadCase.ID, err)
	}

	return &leadCase.ID
}
