package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMedicalRecordRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" validate:"required"`
	DoctorID      *uuid.UUID `json:"doctor_id" validate:"omitempty"` // admin callers name the author
	AppointmentID *uuid.UUID `json:"appointment_id" validate:"omitempty"`
	Diagnosis     string     `json:"diagnosis" validate:"required"`
	Symptoms      string     `json:"symptoms" validate:"omitempty"`
	Prescriptions string     `json:"prescriptions" validate:"omitempty"`
	TestResults   string     `json:"test_results" validate:"omitempty"`
	Notes         string     `json:"notes" validate:"omitempty"`
	FollowUpDate  string     `json:"follow_up_date" validate:"omitempty"` // Format: YYYY-MM-DD
}

type UpdateMedicalRecordRequest struct {
	Diagnosis     *string `json:"diagnosis" validate:"omitempty"`
	Symptoms      *string `json:"symptoms" validate:"omitempty"`
	Prescriptions *string `json:"prescriptions" validate:"omitempty"`
	TestResults   *string `json:"test_results" validate:"omitempty"`
	Notes         *string `json:"notes" validate:"omitempty"`
	FollowUpDate  *string `json:"follow_up_date" validate:"omitempty"` // Format: YYYY-MM-DD
}

type MedicalRecordResponse struct {
	ID            string           `json:"id"`
	PatientID     string           `json:"patient_id"`
	DoctorID      string           `json:"doctor_id"`
	AppointmentID string           `json:"appointment_id,omitempty"`
	Diagnosis     string           `json:"diagnosis"`
	Symptoms      string           `json:"symptoms,omitempty"`
	Prescriptions string           `json:"prescriptions,omitempty"`
	TestResults   string           `json:"test_results,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	FollowUpDate  string           `json:"follow_up_date,omitempty"`
	Patient       *PatientResponse `json:"patient,omitempty"`
	Doctor        *DoctorResponse  `json:"doctor,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int64                   `json:"total"`
}
