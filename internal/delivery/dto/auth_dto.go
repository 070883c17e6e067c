package dto

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterRequest covers all roles: role-specific profile fields are picked up
// depending on the requested role, everything else is ignored.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	Role     string `json:"role" validate:"omitempty,oneof=patient doctor admin"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	Address  string `json:"address" validate:"omitempty"`

	// Patient profile fields
	DateOfBirth        string `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender             string `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodGroup         string `json:"blood_group" validate:"omitempty"`
	EmergencyContact   string `json:"emergency_contact" validate:"omitempty"`
	MedicalHistory     string `json:"medical_history" validate:"omitempty"`
	Allergies          string `json:"allergies" validate:"omitempty"`
	CurrentMedications string `json:"current_medications" validate:"omitempty"`

	// Doctor profile fields
	Specialty       string `json:"specialty" validate:"omitempty"`
	Qualification   string `json:"qualification" validate:"omitempty"`
	Experience      int    `json:"experience" validate:"omitempty,gte=0"`
	LicenseNumber   string `json:"license_number" validate:"omitempty"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
	Bio             string `json:"bio" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type ProfileResponse struct {
	User    UserResponse     `json:"user"`
	Patient *PatientResponse `json:"patient,omitempty"`
	Doctor  *DoctorResponse  `json:"doctor,omitempty"`
}
