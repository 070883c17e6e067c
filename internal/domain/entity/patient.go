package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender constants
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient represents patient-specific profile data, one-to-one with User
type Patient struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DateOfBirth        *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender             Gender     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	BloodGroup         string     `gorm:"type:varchar(10)" json:"blood_group,omitempty"`
	EmergencyContact   string     `gorm:"type:varchar(50)" json:"emergency_contact,omitempty"`
	MedicalHistory     string     `gorm:"type:text" json:"medical_history,omitempty"`
	Allergies          string     `gorm:"type:text" json:"allergies,omitempty"`
	CurrentMedications string     `gorm:"type:text" json:"current_medications,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
