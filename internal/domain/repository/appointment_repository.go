package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindBySlot(db *gorm.DB, doctorID uuid.UUID, date, timeOfDay string) (*entity.Appointment, error)
	DistinctPatientIDs(db *gorm.DB, doctorID uuid.UUID) ([]uuid.UUID, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
