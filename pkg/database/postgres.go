package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

func NewPostgresDB(dsn string, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	return db
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Package{},
		&models.Booking{},
		&models.CartSlot{},
		&models.Profile{},
		&models.Document{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Booking history is always read per user, newest first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC)
	`).Error; err != nil {
		return fmt.Errorf("create booking history index: %w", err)
	}

	return nil
}
