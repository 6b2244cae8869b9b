package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/cart"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/checkout"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type PackageListResponse struct {
	Packages []models.Package `json:"packages"`
	Fallback bool             `json:"fallback"`
}

type CartResponse struct {
	Entries []cart.Entry    `json:"entries"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
}

func ToCartResponse(s *cart.Store) CartResponse {
	entries := s.List()
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Price)
	}
	return CartResponse{Entries: entries, Total: total, Count: len(entries)}
}

type BadgeResponse struct {
	Count int `json:"count"`
}

type CheckoutResponse struct {
	Step         string                   `json:"step"`
	Busy         bool                     `json:"busy"`
	Details      checkout.TravelerDetails `json:"details"`
	Confirmation *checkout.Confirmation   `json:"confirmation,omitempty"`
}

func ToCheckoutResponse(s checkout.Snapshot) CheckoutResponse {
	return CheckoutResponse{
		Step:         s.Step.String(),
		Busy:         s.Busy,
		Details:      s.Details,
		Confirmation: s.Confirmation,
	}
}

type MissingDatesResponse struct {
	Message    string   `json:"message"`
	PackageIDs []string `json:"package_ids"`
}

type BookingResponse struct {
	ID         string               `json:"id"`
	PackageID  string               `json:"package_id"`
	Title      string               `json:"title"`
	Hospital   string               `json:"hospital"`
	Location   string               `json:"location"`
	Price      decimal.Decimal      `json:"price"`
	TravelDate string               `json:"travel_date"`
	Status     models.BookingStatus `json:"status"`
	Reference  string               `json:"reference"`
	CreatedAt  time.Time            `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		PackageID:  b.PackageID,
		Title:      b.Title,
		Hospital:   b.Hospital,
		Location:   b.Location,
		Price:      b.Price,
		TravelDate: b.TravelDate.Format(time.DateOnly),
		Status:     b.Status,
		Reference:  b.Reference,
		CreatedAt:  b.CreatedAt,
	}
}
