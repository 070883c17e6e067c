package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType represents how the appointment is conducted
type AppointmentType string

const (
	AppointmentTypeInPerson AppointmentType = "in-person"
	AppointmentTypeVideo    AppointmentType = "video"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

// appointmentTransitions is the allowed-transition table. Completed, cancelled
// and no-show are terminal states.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
}

// CanTransitionTo reports whether a status change is permitted.
// Setting the same status again is treated as a no-op and allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid checks if the status is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// Appointment links a patient to a doctor at a concrete date/time slot.
// The composite unique index on (doctor_id, date, time) enforces at most one
// appointment per slot at the storage layer, so two concurrent bookings cannot
// both commit.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_doctor_slot" json:"doctor_id"`
	Date      time.Time         `gorm:"type:date;not null;uniqueIndex:idx_appointments_doctor_slot" json:"date"`
	Time      string            `gorm:"type:time;not null;uniqueIndex:idx_appointments_doctor_slot" json:"time"`
	Duration  int               `gorm:"not null;default:30" json:"duration"`
	Type      AppointmentType   `gorm:"type:varchar(20);not null;default:'in-person'" json:"type"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Reason    string            `gorm:"type:text" json:"reason,omitempty"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient             Patient              `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor              Doctor               `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	TelemedicineSession *TelemedicineSession `gorm:"foreignKey:AppointmentID" json:"telemedicine_session,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsVideo checks if the appointment is a video appointment
func (a *Appointment) IsVideo() bool {
	return a.Type == AppointmentTypeVideo
}

// IsScheduled checks if the appointment is still scheduled
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
