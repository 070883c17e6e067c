package converter

import (
	"github.com/google/uuid"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
// Includes patient, doctor and telemedicine session info when loaded
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID.String(),
		PatientID: appointment.PatientID.String(),
		DoctorID:  appointment.DoctorID.String(),
		Date:      appointment.Date.Format("2006-01-02"),
		Time:      appointment.Time,
		Duration:  appointment.Duration,
		Type:      string(appointment.Type),
		Status:    string(appointment.Status),
		Reason:    appointment.Reason,
		Notes:     appointment.Notes,
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.TelemedicineSession != nil {
		response.Session = SessionToResponse(appointment.TelemedicineSession)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}
