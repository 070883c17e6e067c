package converter

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"hospital-management-api/internal/domain/entity"
)

func TestDoctorToResponse(t *testing.T) {
	userID := uuid.New()
	doctor := &entity.Doctor{
		ID:                      uuid.New(),
		UserID:                  userID,
		Specialty:               "Cardiology",
		Experience:              12,
		LicenseNumber:           "MD-12345",
		ConsultationFee:         decimal.NewFromFloat(150.5),
		AvailableDays:           datatypes.JSON(`["monday","wednesday","friday"]`),
		AvailableTimeStart:      "09:00",
		AvailableTimeEnd:        "17:00",
		IsAvailableForVideoCall: true,
		User: entity.User{
			ID:    userID,
			Name:  "Alice Smith",
			Email: "alice@example.com",
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	response := DoctorToResponse(doctor)

	assert.Equal(t, doctor.ID.String(), response.ID)
	assert.Equal(t, "150.50", response.ConsultationFee)
	assert.Equal(t, []string{"monday", "wednesday", "friday"}, response.AvailableDays)
	assert.Equal(t, "Alice Smith", response.Name)
	assert.Equal(t, "alice@example.com", response.Email)
	assert.True(t, response.IsAvailableForVideoCall)
}

func TestDoctorToResponse_Nil(t *testing.T) {
	assert.Nil(t, DoctorToResponse(nil))
}

func TestDoctorToResponse_NoUserLoaded(t *testing.T) {
	doctor := &entity.Doctor{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Specialty: "Dermatology",
	}

	response := DoctorToResponse(doctor)

	assert.Empty(t, response.Name)
	assert.Empty(t, response.Email)
	assert.Equal(t, "0.00", response.ConsultationFee)
}
