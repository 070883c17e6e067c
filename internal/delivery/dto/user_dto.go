package dto

import "time"

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Phone    *string `json:"phone" validate:"omitempty,min=7,max=20"`
	Address  *string `json:"address" validate:"omitempty"`
	IsActive *bool   `json:"is_active" validate:"omitempty"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	IsActive       bool      `json:"is_active"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type UserDetailResponse struct {
	User    UserResponse     `json:"user"`
	Patient *PatientResponse `json:"patient,omitempty"`
	Doctor  *DoctorResponse  `json:"doctor,omitempty"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}
