package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProvisionSessionRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
}

type EndSessionRequest struct {
	Notes        string `json:"notes" validate:"omitempty"`
	RecordingURL string `json:"recording_url" validate:"omitempty,url"`
}

type StartSessionResponse struct {
	Session *TelemedicineSessionResponse `json:"session"`
	HostURL string                       `json:"host_url"`
}

type TelemedicineSessionResponse struct {
	ID            string               `json:"id"`
	AppointmentID string               `json:"appointment_id"`
	MeetingID     string               `json:"meeting_id"`
	JoinURL       string               `json:"join_url"`
	Password      string               `json:"password,omitempty"`
	Status        string               `json:"status"`
	StartTime     *time.Time           `json:"start_time,omitempty"`
	EndTime       *time.Time           `json:"end_time,omitempty"`
	Duration      int                  `json:"duration"`
	RecordingURL  string               `json:"recording_url,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Appointment   *AppointmentResponse `json:"appointment,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type TelemedicineSessionListResponse struct {
	Sessions []TelemedicineSessionResponse `json:"sessions"`
	Total    int64                         `json:"total"`
}
