package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord stores the clinical outcome of a visit. AppointmentID is
// optional; when present the record must match the appointment's doctor and
// patient.
type MedicalRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Diagnosis     string     `gorm:"type:text" json:"diagnosis,omitempty"`
	Symptoms      string     `gorm:"type:text" json:"symptoms,omitempty"`
	Prescriptions string     `gorm:"type:text" json:"prescriptions,omitempty"`
	TestResults   string     `gorm:"type:text" json:"test_results,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	FollowUpDate  *time.Time `gorm:"type:date" json:"follow_up_date,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      Doctor       `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
