package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
)

// Package is a purchasable treatment bundle. It is never mutated after load.
type Package struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Location    string          `gorm:"index" json:"location"`
	Hospital    string          `json:"hospital"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	Duration    string          `json:"duration"`
	Treatment   string          `gorm:"index" json:"treatment"`
	Includes    []string        `gorm:"serializer:json;type:text" json:"includes"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (p *Package) Validate() error {
	switch {
	case p.ID == "":
		return apperr.Validation("package id is required")
	case !p.Price.IsPositive():
		return apperr.Validationf("package %s: price must be positive", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return apperr.Validationf("package %s: rating must be between 0 and 5", p.ID)
	case p.ReviewCount < 0:
		return apperr.Validationf("package %s: review count cannot be negative", p.ID)
	}
	return nil
}
