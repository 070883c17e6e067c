package converter

import (
	"encoding/json"

	"github.com/google/uuid"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
// Flattens name/email from the User relationship if it is loaded
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:                      doctor.ID.String(),
		UserID:                  doctor.UserID.String(),
		Specialty:               doctor.Specialty,
		Qualification:           doctor.Qualification,
		Experience:              doctor.Experience,
		LicenseNumber:           doctor.LicenseNumber,
		ConsultationFee:         doctor.ConsultationFee.StringFixed(2),
		AvailableTimeStart:      doctor.AvailableTimeStart,
		AvailableTimeEnd:        doctor.AvailableTimeEnd,
		IsAvailableForVideoCall: doctor.IsAvailableForVideoCall,
		Bio:                     doctor.Bio,
		CreatedAt:               doctor.CreatedAt,
		UpdatedAt:               doctor.UpdatedAt,
	}

	if len(doctor.AvailableDays) > 0 {
		var days []string
		if err := json.Unmarshal(doctor.AvailableDays, &days); err == nil {
			response.AvailableDays = days
		}
	}

	if doctor.User.ID != uuid.Nil {
		response.Name = doctor.User.Name
		response.Email = doctor.User.Email
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = *DoctorToResponse(&doctor)
	}
	return responses
}
