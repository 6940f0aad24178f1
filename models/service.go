package models

import (
	"github.com/google/uuid"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `gorm:"not null"`
	Description string
	Price       float64 `gorm:"type:decimal(10,2);not null"`
	Duration    int     // in minutes; 0 means the default footprint applies
	Category    string  `gorm:"default:'General'"`
	IsActive    bool    `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:ServiceID"`
	WorkOrders   []WorkOrder   `gorm:"foreignKey:ServiceID"`
}
