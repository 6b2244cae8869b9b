package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is one purchased package. Title, hospital and location are copied
// at checkout so history survives catalog changes.
type Booking struct {
	ID         string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string          `gorm:"not null;index" json:"user_id"`
	PackageID  string          `gorm:"not null;type:varchar(64)" json:"package_id"`
	Title      string          `json:"title"`
	Hospital   string          `json:"hospital"`
	Location   string          `json:"location"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	TravelDate time.Time       `gorm:"not null" json:"travel_date"`
	Status     BookingStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Reference  string          `gorm:"type:varchar(16);index" json:"reference"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
