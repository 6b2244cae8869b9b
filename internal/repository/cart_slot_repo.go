package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

// CartSlotRepository stores serialized carts keyed by user and slot name.
type CartSlotRepository struct {
	db *gorm.DB
}

func NewCartSlotRepository(db *gorm.DB) *CartSlotRepository {
	return &CartSlotRepository{db: db}
}

// LoadSlot returns a nil payload when the slot was never written.
func (r *CartSlotRepository) LoadSlot(ctx context.Context, userID, key string) ([]byte, error) {
	var slot models.CartSlot
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND slot_key = ?", userID, key).
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(slot.Payload), nil
}

// SaveSlot overwrites the slot; the last writer wins.
func (r *CartSlotRepository) SaveSlot(ctx context.Context, userID, key string, payload []byte) error {
	slot := models.CartSlot{UserID: userID, Key: key, Payload: string(payload)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&slot).Error
}
