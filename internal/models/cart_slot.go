package models

import "time"

// CartSlot is the durable key-value slot holding a user's serialized cart.
type CartSlot struct {
	UserID    string `gorm:"primaryKey;type:varchar(64)"`
	Key       string `gorm:"primaryKey;column:slot_key;type:varchar(64)"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
