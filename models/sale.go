package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale statuses. A draft can only move DRAFT -> CONFIRMING through an
// atomic conditional update; a sale that dies mid-confirmation stays in
// CONFIRMING for manual reconciliation.
const (
	SaleDraft      = "DRAFT"
	SaleConfirming = "CONFIRMING"
	SaleCompleted  = "COMPLETED"
	SaleCancelled  = "CANCELLED"
)

type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name     string    `gorm:"not null"`
	Brand    string
	Category string  `gorm:"default:'General'"`
	Price    float64 `gorm:"type:decimal(10,2);not null"`
	Stock    int     `gorm:"default:0"`
	IsActive bool    `gorm:"default:true"`

	gorm.Model
}

type Sale struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	WorkOrderID *uuid.UUID `gorm:"type:uuid;index"`

	SaleDate time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	Subtotal float64   `gorm:"type:decimal(10,2);not null"`
	Discount float64   `gorm:"type:decimal(10,2);default:0.0"`
	Total    float64   `gorm:"type:decimal(10,2);not null"`

	Status        string `gorm:"type:varchar(20);default:'DRAFT';index"`
	PaymentMethod string
	Notes         string

	Items []SaleItem `gorm:"foreignKey:SaleID"`

	gorm.Model
}

type SaleItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SaleID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index"`
	ServiceID   *uuid.UUID `gorm:"type:uuid;index"`
	Description string     `gorm:"not null"`
	Quantity    int        `gorm:"default:1"`
	UnitPrice   float64    `gorm:"type:decimal(10,2);not null"`
	TotalPrice  float64    `gorm:"type:decimal(10,2);not null"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (i *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
