package dto

type AddCartItemRequest struct {
	PackageID string `json:"package_id" validate:"required"`
}

type SetTravelDateRequest struct {
	TravelDate string `json:"travel_date" validate:"required,datetime=2006-01-02"`
}

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name" validate:"omitempty,max=200"`
	Email             *string `json:"email" validate:"omitempty,max=254"`
	Age               *int    `json:"age"`
	Country           *string `json:"country" validate:"omitempty,max=100"`
	Phone             *string `json:"phone" validate:"omitempty,max=40"`
	Address           *string `json:"address" validate:"omitempty,max=500"`
	Gender            *string `json:"gender" validate:"omitempty,max=40"`
	BloodType         *string `json:"blood_type" validate:"omitempty,max=3"`
	Allergies         *string `json:"allergies" validate:"omitempty,max=2000"`
	MedicalConditions *string `json:"medical_conditions" validate:"omitempty,max=2000"`
}

// PackageQuery holds the catalog filter query parameters.
type PackageQuery struct {
	Treatment string `query:"treatment"`
	Location  string `query:"location"`
	Search    string `query:"q"`
	MinPrice  string `query:"min_price"`
	MaxPrice  string `query:"max_price"`
}
