package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time      string    `json:"time" validate:"required"` // Format: HH:MM
	Duration  int       `json:"duration" validate:"omitempty,gte=5,lte=240"`
	Type      string    `json:"type" validate:"omitempty,oneof=in-person video"`
	Reason    string    `json:"reason" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	Date     *string `json:"date" validate:"omitempty"` // Format: YYYY-MM-DD
	Time     *string `json:"time" validate:"omitempty"` // Format: HH:MM
	Duration *int    `json:"duration" validate:"omitempty,gte=5,lte=240"`
	Type     *string `json:"type" validate:"omitempty,oneof=in-person video"`
	Status   *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no-show"`
	Reason   *string `json:"reason" validate:"omitempty"`
	Notes    *string `json:"notes" validate:"omitempty"`
}

type AppointmentResponse struct {
	ID        string                       `json:"id"`
	PatientID string                       `json:"patient_id"`
	DoctorID  string                       `json:"doctor_id"`
	Date      string                       `json:"date"`
	Time      string                       `json:"time"`
	Duration  int                          `json:"duration"`
	Type      string                       `json:"type"`
	Status    string                       `json:"status"`
	Reason    string                       `json:"reason,omitempty"`
	Notes     string                       `json:"notes,omitempty"`
	Patient   *PatientResponse             `json:"patient,omitempty"`
	Doctor    *DoctorResponse              `json:"doctor,omitempty"`
	Session   *TelemedicineSessionResponse `json:"telemedicine_session,omitempty"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}
