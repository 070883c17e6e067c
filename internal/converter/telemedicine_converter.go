package converter

import (
	"github.com/google/uuid"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// SessionToResponse converts a TelemedicineSession entity to its response DTO.
// The host URL is intentionally left out; it is only exposed to the doctor
// when the session is started.
func SessionToResponse(session *entity.TelemedicineSession) *dto.TelemedicineSessionResponse {
	if session == nil {
		return nil
	}

	response := &dto.TelemedicineSessionResponse{
		ID:            session.ID.String(),
		AppointmentID: session.AppointmentID.String(),
		MeetingID:     session.MeetingID,
		JoinURL:       session.JoinURL,
		Password:      session.MeetingPassword,
		Status:        string(session.Status),
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		Duration:      session.Duration,
		RecordingURL:  session.RecordingURL,
		Notes:         session.Notes,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}

	if session.Appointment.ID != uuid.Nil {
		response.Appointment = AppointmentToResponse(&session.Appointment)
	}

	return response
}

// SessionsToResponses converts a slice of TelemedicineSession entities to response DTOs
func SessionsToResponses(sessions []entity.TelemedicineSession) []dto.TelemedicineSessionResponse {
	responses := make([]dto.TelemedicineSessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = *SessionToResponse(&session)
	}
	return responses
}
