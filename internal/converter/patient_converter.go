package converter

import (
	"github.com/google/uuid"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
// Flattens name/email/phone from the User relationship if it is loaded
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:                 patient.ID.String(),
		UserID:             patient.UserID.String(),
		Gender:             string(patient.Gender),
		BloodGroup:         patient.BloodGroup,
		EmergencyContact:   patient.EmergencyContact,
		MedicalHistory:     patient.MedicalHistory,
		Allergies:          patient.Allergies,
		CurrentMedications: patient.CurrentMedications,
		CreatedAt:          patient.CreatedAt,
		UpdatedAt:          patient.UpdatedAt,
	}

	if patient.DateOfBirth != nil {
		response.DateOfBirth = patient.DateOfBirth.Format("2006-01-02")
	}

	if patient.User.ID != uuid.Nil {
		response.Name = patient.User.Name
		response.Email = patient.User.Email
		response.Phone = patient.User.Phone
	}

	return response
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		responses[i] = *PatientToResponse(&patient)
	}
	return responses
}
