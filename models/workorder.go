package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Work order statuses
const (
	WorkOrderOpen       = "OPEN"
	WorkOrderInProgress = "IN_PROGRESS"
	WorkOrderDelivered  = "DELIVERED"
	WorkOrderCancelled  = "CANCELLED"
)

type WorkOrder struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	VehicleID uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServiceID *uuid.UUID `gorm:"type:uuid;index"`

	Date    time.Time `gorm:"index;not null"`
	Mileage int       `gorm:"default:0"`
	Status  string    `gorm:"type:varchar(20);default:'OPEN';index"`
	Notes   string    `gorm:"type:text"`

	// Semi-structured record of what was actually performed: oil brand/type/
	// liters, per-filter codes or done-flags, fluids, battery data. The
	// maintenance inference engine mines this payload.
	ServiceDetail JSONB `gorm:"type:jsonb;default:'{}'"`

	Items []WorkOrderItem `gorm:"foreignKey:WorkOrderID"`

	Service *Service `gorm:"foreignKey:ServiceID"`
	Vehicle Vehicle  `gorm:"foreignKey:VehicleID"`

	gorm.Model
}

type WorkOrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null"`
	Quantity    int       `gorm:"default:1"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);default:0.0"`
	TotalPrice  float64   `gorm:"type:decimal(10,2);default:0.0"`
}

func (w *WorkOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

func (i *WorkOrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
