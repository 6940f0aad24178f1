package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	Name       string `gorm:"not null"`
	Phone      string `gorm:"not null;uniqueIndex"`
	Email      string
	Notes      string
	Source     string `gorm:"type:varchar(20);default:'counter'"` // counter, whatsapp, booking, lead
	LastVisit  *time.Time
	TotalSpent float64 `gorm:"type:decimal(10,2);default:0.0"`
	IsActive   bool    `gorm:"default:true"`

	Vehicles     []Vehicle     `gorm:"foreignKey:ClientID"`
	Appointments []Appointment `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
