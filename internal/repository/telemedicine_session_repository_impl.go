package repository

import (
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type telemedicineSessionRepository struct{}

func NewTelemedicineSessionRepository() domainRepo.TelemedicineSessionRepository {
	return &telemedicineSessionRepository{}
}

func (r *telemedicineSessionRepository) Create(db *gorm.DB, session *entity.TelemedicineSession) error {
	return db.Create(session).Error
}

func (r *telemedicineSessionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TelemedicineSession, error) {
	var session entity.TelemedicineSession
	err := db.Preload("Appointment.Patient.User").
		Preload("Appointment.Doctor.User").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *telemedicineSessionRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.TelemedicineSession, error) {
	var session entity.TelemedicineSession
	err := db.Where("appointment_id = ?", appointmentID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *telemedicineSessionRepository) FindAll(db *gorm.DB) ([]entity.TelemedicineSession, error) {
	var sessions []entity.TelemedicineSession
	err := db.Preload("Appointment.Patient.User").
		Preload("Appointment.Doctor.User").
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *telemedicineSessionRepository) Update(db *gorm.DB, session *entity.TelemedicineSession) error {
	return db.Save(session).Error
}

func (r *telemedicineSessionRepository) DeleteByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) error {
	return db.Where("appointment_id = ?", appointmentID).Delete(&entity.TelemedicineSession{}).Error
}
