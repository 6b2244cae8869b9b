package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByUser(ctx context.Context, userID string, status *models.BookingStatus) ([]models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.BookingStatus) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByUser lists a user's bookings newest first, optionally narrowed to one
// status.
func (r *bookingRepository) FindByUser(ctx context.Context, userID string, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at DESC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the given transaction.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}
