// services/whatsapp_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"lubripro-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const (
	MessageAppointmentConfirmation = "appointment_confirmation"
	MessageServiceDue              = "service_due"
)

type WhatsAppService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewWhatsAppService(db *gorm.DB) *WhatsAppService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &WhatsAppService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *WhatsAppService) StartScheduler() {
	c := cron.New()

	// Service-due reminders every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendServiceDueReminders()
	})

	c.Start()
	log.Println("WhatsApp reminder scheduler started")
}

// SendServiceDueReminders messages every client whose vehicle's predicted
// next service falls within the next 7 days.
func (s *WhatsAppService) SendServiceDueReminders() {
	log.Println("Starting service-due reminder processing...")

	horizon := time.Now().AddDate(0, 0, 7)

	var vehicles []models.Vehicle
	if err := s.db.Where("predicted_next_service IS NOT NULL AND predicted_next_service <= ?", horizon).
		Find(&vehicles).Error; err != nil {
		log.Printf("Failed to fetch due vehicles: %v", err)
		return
	}

	for _, vehicle := range vehicles {
		var client models.Client
		if err := s.db.First(&client, "id = ?", vehicle.ClientID).Error; err != nil {
			log.Printf("Vehicle %s: client lookup failed: %v", vehicle.Plate, err)
			continue
		}

		message := fmt.Sprintf(
			"Hola %s! Tu %s %s (%s) está cerca de su próximo service. Escribinos para reservar un turno.",
			client.Name, vehicle.Brand, vehicle.Model, vehicle.Plate)

		s.Send(client.Phone, message, MessageServiceDue, &client.ID, &vehicle.ID)
	}

	log.Println("Service-due reminder processing completed")
}

// SendAppointmentConfirmation notifies the client after a booking commits.
func (s *WhatsAppService) SendAppointmentConfirmation(appt models.Appointment) {
	var client models.Client
	if err := s.db.First(&client, "id = ?", appt.ClientID).Error; err != nil {
		log.Printf("Appointment %s: client lookup failed: %v", appt.ID, err)
		return
	}

	serviceName := appt.Service.Name
	if serviceName == "" {
		var service models.Service
		if err := s.db.First(&service, "id = ?", appt.ServiceID).Error; err == nil {
			serviceName = service.Name
		}
	}

	message := fmt.Sprintf(
		"Hola %s! Tu turno de %s quedó reservado para el %s. Te esperamos!",
		client.Name, serviceName, appt.Date.Format("02/01 15:04"))

	s.Send(client.Phone, message, MessageAppointmentConfirmation, &client.ID, &appt.VehicleID)
}

// Send dispatches a single message and logs the attempt. Delivery status is
// never inspected synchronously; failures are recorded and swallowed.
func (s *WhatsAppService) Send(phone, message, messageType string, clientID, vehicleID *uuid.UUID) {
	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if len(phone) > 0 && phone[0] == '+' {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	} else {
		to = phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", phone)
	}

	messageLog := models.MessageLog{
		ClientID:     clientID,
		VehicleID:    vehicleID,
		Type:         messageType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&messageLog).Error; err != nil {
		log.Printf("Failed to log message to %s: %v", phone, err)
	}
}
