package converter

import (
	"github.com/google/uuid"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// MedicalRecordToResponse converts a MedicalRecord entity to MedicalRecordResponse DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:            record.ID.String(),
		PatientID:     record.PatientID.String(),
		DoctorID:      record.DoctorID.String(),
		Diagnosis:     record.Diagnosis,
		Symptoms:      record.Symptoms,
		Prescriptions: record.Prescriptions,
		TestResults:   record.TestResults,
		Notes:         record.Notes,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}

	if record.AppointmentID != nil {
		response.AppointmentID = record.AppointmentID.String()
	}
	if record.FollowUpDate != nil {
		response.FollowUpDate = record.FollowUpDate.Format("2006-01-02")
	}
	if record.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&record.Patient)
	}
	if record.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&record.Doctor)
	}

	return response
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to slice of MedicalRecordResponse DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i, record := range records {
		responses[i] = *MedicalRecordToResponse(&record)
	}
	return responses
}
