package models

import "time"

// Document is an uploaded medical record. The file itself lives in object
// storage under ObjectKey.
type Document struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        string    `gorm:"type:varchar(16)" json:"type"`
	SizeBytes   int64     `json:"size_bytes"`
	Size        string    `gorm:"type:varchar(32)" json:"size"`
	ContentType string    `json:"content_type"`
	ObjectKey   string    `gorm:"not null" json:"-"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
