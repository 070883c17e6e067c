package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TelemedicineSessionRepository interface {
	Create(db *gorm.DB, session *entity.TelemedicineSession) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TelemedicineSession, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.TelemedicineSession, error)
	FindAll(db *gorm.DB) ([]entity.TelemedicineSession, error)
	Update(db *gorm.DB, session *entity.TelemedicineSession) error
	DeleteByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) error
}
