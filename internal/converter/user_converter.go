package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		Name:           user.Name,
		Role:           string(user.Role),
		Phone:          user.Phone,
		Address:        user.Address,
		IsActive:       user.IsActive,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// UserToDetailResponse converts a User entity to UserDetailResponse DTO
// Includes the doctor or patient profile if loaded
func UserToDetailResponse(user *entity.User) *dto.UserDetailResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserDetailResponse{
		User: *UserToResponse(user),
	}
	if user.Patient != nil {
		response.Patient = PatientToResponse(user.Patient)
	}
	if user.Doctor != nil {
		response.Doctor = DoctorToResponse(user.Doctor)
	}
	return response
}

// UsersToResponses converts a slice of User entities to slice of UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		responses[i] = *UserToResponse(&user)
	}
	return responses
}
