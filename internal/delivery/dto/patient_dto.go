package dto

import "time"

type UpdatePatientRequest struct {
	DateOfBirth        *string `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender             *string `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodGroup         *string `json:"blood_group" validate:"omitempty"`
	EmergencyContact   *string `json:"emergency_contact" validate:"omitempty"`
	MedicalHistory     *string `json:"medical_history" validate:"omitempty"`
	Allergies          *string `json:"allergies" validate:"omitempty"`
	CurrentMedications *string `json:"current_medications" validate:"omitempty"`
}

type PatientResponse struct {
	ID                 string        `json:"id"`
	UserID             string        `json:"user_id"`
	Name               string        `json:"name,omitempty"`
	Email              string        `json:"email,omitempty"`
	Phone              string        `json:"phone,omitempty"`
	DateOfBirth        string        `json:"date_of_birth,omitempty"`
	Gender             string        `json:"gender,omitempty"`
	BloodGroup         string        `json:"blood_group,omitempty"`
	EmergencyContact   string        `json:"emergency_contact,omitempty"`
	MedicalHistory     string        `json:"medical_history,omitempty"`
	Allergies          string        `json:"allergies,omitempty"`
	CurrentMedications string        `json:"current_medications,omitempty"`
	User               *UserResponse `json:"user,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
}
