package dto

import "time"

type UpdateDoctorRequest struct {
	Specialty               *string  `json:"specialty" validate:"omitempty"`
	Qualification           *string  `json:"qualification" validate:"omitempty"`
	Experience              *int     `json:"experience" validate:"omitempty,gte=0"`
	LicenseNumber           *string  `json:"license_number" validate:"omitempty"`
	ConsultationFee         *string  `json:"consultation_fee" validate:"omitempty"`
	AvailableDays           []string `json:"available_days" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	AvailableTimeStart      *string  `json:"available_time_start" validate:"omitempty"` // Format: HH:MM
	AvailableTimeEnd        *string  `json:"available_time_end" validate:"omitempty"`   // Format: HH:MM
	IsAvailableForVideoCall *bool    `json:"is_available_for_video_call" validate:"omitempty"`
	Bio                     *string  `json:"bio" validate:"omitempty"`
}

type DoctorProfileRequest struct {
	Specialty               string   `json:"specialty" validate:"required"`
	Qualification           string   `json:"qualification" validate:"omitempty"`
	Experience              int      `json:"experience" validate:"omitempty,gte=0"`
	LicenseNumber           string   `json:"license_number" validate:"required"`
	ConsultationFee         string   `json:"consultation_fee" validate:"omitempty"`
	AvailableDays           []string `json:"available_days" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	AvailableTimeStart      string   `json:"available_time_start" validate:"omitempty"` // Format: HH:MM
	AvailableTimeEnd        string   `json:"available_time_end" validate:"omitempty"`   // Format: HH:MM
	IsAvailableForVideoCall bool     `json:"is_available_for_video_call"`
	Bio                     string   `json:"bio" validate:"omitempty"`
}

type DoctorResponse struct {
	ID                      string        `json:"id"`
	UserID                  string        `json:"user_id"`
	Name                    string        `json:"name,omitempty"`
	Email                   string        `json:"email,omitempty"`
	Specialty               string        `json:"specialty"`
	Qualification           string        `json:"qualification,omitempty"`
	Experience              int           `json:"experience"`
	LicenseNumber           string        `json:"license_number,omitempty"`
	ConsultationFee         string        `json:"consultation_fee"`
	AvailableDays           []string      `json:"available_days,omitempty"`
	AvailableTimeStart      string        `json:"available_time_start,omitempty"`
	AvailableTimeEnd        string        `json:"available_time_end,omitempty"`
	IsAvailableForVideoCall bool          `json:"is_available_for_video_call"`
	Bio                     string        `json:"bio,omitempty"`
	User                    *UserResponse `json:"user,omitempty"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int64            `json:"total"`
}
