// models/message_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID    *uuid.UUID `gorm:"type:uuid;index"`
	Type         string     `gorm:"type:varchar(30)"` // appointment_confirmation, service_due
	Message      string     `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string     `gorm:"type:text"`
	Channel      string     `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt       time.Time
	gorm.Model
}

func (m *MessageLog) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
