package models

import "time"

type Profile struct {
	UserID            string    `gorm:"primaryKey;type:varchar(64)" json:"user_id"`
	FullName          *string   `json:"full_name"`
	Email             *string   `json:"email"`
	Age               *int      `json:"age"`
	Country           *string   `json:"country"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	Gender            *string   `json:"gender"`
	BloodType         *string   `gorm:"type:varchar(3)" json:"blood_type"`
	Allergies         *string   `json:"allergies"`
	MedicalConditions *string   `json:"medical_conditions"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
