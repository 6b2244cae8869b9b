package service

import (
	"context"
	"slices"
	"strings"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/repository"
)

var (
	ErrInvalidAge       = apperr.Validation("age must be between 0 and 150")
	ErrInvalidBloodType = apperr.Validation("blood type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
)

var bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ProfileUpdate carries the fields to change. Nil fields are left as they
// are; an empty string clears the field.
type ProfileUpdate struct {
	FullName          *string
	Email             *string
	Age               *int
	Country           *string
	Phone             *string
	Address           *string
	Gender            *string
	BloodType         *string
	Allergies         *string
	MedicalConditions *string
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// GetProfile returns the user's profile, creating an empty one on first read.
func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.repo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Remote("load profile", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.Profile, error) {
	if update.Age != nil && (*update.Age < 0 || *update.Age > 150) {
		return nil, ErrInvalidAge
	}
	if update.BloodType != nil {
		bt := strings.ToUpper(strings.TrimSpace(*update.BloodType))
		if bt != "" && !slices.Contains(bloodTypes, bt) {
			return nil, ErrInvalidBloodType
		}
		update.BloodType = &bt
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	setText(&profile.FullName, update.FullName)
	setText(&profile.Email, update.Email)
	setText(&profile.Country, update.Country)
	setText(&profile.Phone, update.Phone)
	setText(&profile.Address, update.Address)
	setText(&profile.Gender, update.Gender)
	setText(&profile.BloodType, update.BloodType)
	setText(&profile.Allergies, update.Allergies)
	setText(&profile.MedicalConditions, update.MedicalConditions)
	if update.Age != nil {
		age := *update.Age
		profile.Age = &age
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, apperr.Remote("save profile", err)
	}
	return profile, nil
}

func setText(field **string, v *string) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		*field = nil
		return
	}
	*field = &s
}
