package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, id string) (*models.Document, error)
	FindByUser(ctx context.Context, userID string) ([]models.Document, error)
	Delete(ctx context.Context, id string) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByUser(ctx context.Context, userID string) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id).Error
}
