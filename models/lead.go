package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead case categories, inferred from service-category keywords when a
// booking commit auto-creates a case.
const (
	LeadCategoryOilService = "OIL_SERVICE"
	LeadCategoryBattery    = "BATTERY"
	LeadCategoryTyres      = "TYRES"
	LeadCategoryOther      = "OTHER"
)

// Inbox pipeline statuses
const (
	LeadNew       = "NEW"
	LeadContacted = "CONTACTED"
	LeadScheduled = "SCHEDULED"
	LeadClosed    = "CLOSED"
)

type LeadCase struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	ClientID  *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID *uuid.UUID `gorm:"type:uuid;index"`

	Category string `gorm:"type:varchar(20);default:'OTHER';index"`
	Status   string `gorm:"type:varchar(20);default:'NEW';index"`
	Summary  string `gorm:"type:text"`
	Urgency  string `gorm:"type:varchar(10)"` // low, medium, high

	// Raw intake text plus the extractor's advisory guesses, kept so staff
	// can see what the classifier was working from.
	RawText      string `gorm:"type:text"`
	GuessedModel string
	GuessedPlate string

	ContactName  string
	ContactPhone string

	Logs []LeadLog `gorm:"foreignKey:LeadCaseID"`

	gorm.Model
}

type LeadLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	LeadCaseID uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	Entry      string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

func (l *LeadCase) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

func (l *LeadLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
