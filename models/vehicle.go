package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`

	Plate string `gorm:"not null;uniqueIndex"`
	Brand string
	Model string
	Year  int

	Mileage int `gorm:"default:0"`

	// Projection fields, recomputed whenever a work order is delivered
	// with mileage. Never hand-edited.
	AverageDailyKm       float64 `gorm:"type:decimal(6,2);default:30"`
	LastServiceDate      *time.Time
	LastServiceMileage   int
	PredictedNextService *time.Time

	WorkOrders   []WorkOrder   `gorm:"foreignKey:VehicleID"`
	Appointments []Appointment `gorm:"foreignKey:VehicleID"`

	// gorm.Model fields inlined: the embedded struct's name ("Model")
	// collides with the vehicle's Model field above.
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
