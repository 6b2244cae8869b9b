package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

type ProfileRepository interface {
	FindOrCreate(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindOrCreate returns the user's profile, inserting an empty one first if
// the user has none.
func (r *profileRepository) FindOrCreate(ctx context.Context, userID string) (*models.Profile, error) {
	profile := models.Profile{UserID: userID}
	if err := r.db.WithContext(ctx).
		Where(models.Profile{UserID: userID}).
		FirstOrCreate(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
