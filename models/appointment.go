package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Appointments are never physically deleted;
// cancellations and no-shows are status transitions.
const (
	AppointmentRequested  = "REQUESTED"
	AppointmentConfirmed  = "CONFIRMED"
	AppointmentTodayQueue = "TODAY_QUEUE"
	AppointmentDone       = "DONE"
	AppointmentCancelled  = "CANCELLED"
	AppointmentNoShow     = "NO_SHOW"
)

type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	Date      time.Time `gorm:"index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	VehicleID uuid.UUID `gorm:"type:uuid;index;not null"`

	Status string `gorm:"type:varchar(20);default:'REQUESTED';index"`
	Notes  string

	// Set when the booking was created out of an inbox lead, or when the
	// commit auto-created a tracking case.
	LeadCaseID *uuid.UUID `gorm:"type:uuid;index"`

	Service Service `gorm:"foreignKey:ServiceID"`
	Client  Client  `gorm:"foreignKey:ClientID"`
	Vehicle Vehicle `gorm:"foreignKey:VehicleID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
