package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

type PackageRepository interface {
	FindAll(ctx context.Context) ([]models.Package, error)
	FindByID(ctx context.Context, id string) (*models.Package, error)
	Upsert(ctx context.Context, pkg *models.Package) error
	Delete(ctx context.Context, id string) error
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) FindAll(ctx context.Context) ([]models.Package, error) {
	var pkgs []models.Package
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *packageRepository) FindByID(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Upsert inserts the package or overwrites the stored copy with the same id.
func (r *packageRepository) Upsert(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "image", "location", "hospital", "price",
			"rating", "review_count", "duration", "treatment", "includes", "updated_at",
		}),
	}).Create(pkg).Error
}

func (r *packageRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Package{}, "id = ?", id).Error
}
