package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/policy"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("medical record not found")
	ErrRecordMismatch = errors.New("appointment does not belong to this doctor and patient")
	ErrNotDoctor      = errors.New("only doctors can author medical records")
	ErrDoctorRequired = errors.New("doctor_id is required when an admin creates a record")
	ErrRecordNotOwned = errors.New("medical record belongs to another doctor")
)

type MedicalRecordUsecase interface {
	CreateMedicalRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	ListMedicalRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error)
	GetMedicalRecord(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	UpdateMedicalRecord(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	DeleteMedicalRecord(ctx context.Context, id uuid.UUID) error
}

type medicalRecordUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	recordRepo      repository.MedicalRecordRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:              db,
		log:             log,
		recordRepo:      recordRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// CreateMedicalRecord writes the clinical outcome of a visit. Doctors author
// their own records; admins name the author through doctor_id. When the record
// is linked to an appointment the appointment must belong to the same doctor
// and patient, and a scheduled appointment is marked completed in the same
// transaction.
func (u *medicalRecordUsecase) CreateMedicalRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	var doctor *entity.Doctor
	var err error
	if caller.IsAdmin() {
		if req.DoctorID == nil {
			return nil, ErrDoctorRequired
		}
		doctor, err = u.doctorRepo.FindByID(u.db.WithContext(ctx), *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", *req.DoctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
	} else {
		doctor, err = u.doctorRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile for user %s: %+v", caller.UserID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrNotDoctor
		}
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	record := &entity.MedicalRecord{
		PatientID:     req.PatientID,
		DoctorID:      doctor.ID,
		AppointmentID: req.AppointmentID,
		Diagnosis:     req.Diagnosis,
		Symptoms:      req.Symptoms,
		Prescriptions: req.Prescriptions,
		TestResults:   req.TestResults,
		Notes:         req.Notes,
	}

	if req.FollowUpDate != "" {
		followUp, err := time.Parse("2006-01-02", req.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		record.FollowUpDate = &followUp
	}

	var appointment *entity.Appointment
	if req.AppointmentID != nil {
		appointment, err = u.appointmentRepo.FindByID(u.db.WithContext(ctx), *req.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
		if appointment.DoctorID != doctor.ID || appointment.PatientID != req.PatientID {
			return nil, ErrRecordMismatch
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	// A documented visit is a completed appointment
	if appointment != nil && appointment.Status.CanTransitionTo(entity.AppointmentStatusCompleted) {
		if err := u.appointmentRepo.UpdateStatus(tx, appointment.ID, entity.AppointmentStatusCompleted); err != nil {
			u.log.Warnf("Failed to complete appointment %s: %+v", appointment.ID, err)
			return nil, err
		}
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionRecordCreate, entity.JSON{
		"record_id":  record.ID.String(),
		"patient_id": req.PatientID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Medical record created: id=%s, patient=%s", record.ID, req.PatientID)

	full, err := u.recordRepo.FindByID(u.db.WithContext(ctx), record.ID)
	if err != nil || full == nil {
		return converter.MedicalRecordToResponse(record), nil
	}
	return converter.MedicalRecordToResponse(full), nil
}

// ListMedicalRecords is scoped to the caller: patients see their own history,
// doctors the records they authored, admins everything.
func (u *medicalRecordUsecase) ListMedicalRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	var records []entity.MedicalRecord
	var err error

	switch {
	case caller.IsAdmin():
		records, err = u.recordRepo.FindAll(u.db.WithContext(ctx))
	case caller.IsDoctor():
		var doctor *entity.Doctor
		doctor, err = u.doctorRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
		if err == nil {
			if doctor == nil {
				return nil, ErrDoctorNotFound
			}
			records, err = u.recordRepo.FindByDoctorID(u.db.WithContext(ctx), doctor.ID)
		}
	default:
		var patient *entity.Patient
		patient, err = u.patientRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
		if err == nil {
			if patient == nil {
				return nil, ErrPatientNotFound
			}
			records, err = u.recordRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
		}
	}

	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   int64(len(records)),
	}, nil
}

func (u *medicalRecordUsecase) GetMedicalRecord(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if !policy.Allows(caller, &record.Patient.UserID, &record.Doctor.UserID) {
		return nil, ErrForbidden
	}

	return converter.MedicalRecordToResponse(record), nil
}

// UpdateMedicalRecord patches record fields. Only the authoring doctor or an
// admin may change a record.
func (u *medicalRecordUsecase) UpdateMedicalRecord(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if !policy.Allows(caller, nil, &record.Doctor.UserID) {
		return nil, ErrRecordNotOwned
	}

	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Symptoms != nil {
		record.Symptoms = *req.Symptoms
	}
	if req.Prescriptions != nil {
		record.Prescriptions = *req.Prescriptions
	}
	if req.TestResults != nil {
		record.TestResults = *req.TestResults
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.FollowUpDate != nil {
		followUp, err := time.Parse("2006-01-02", *req.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		record.FollowUpDate = &followUp
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Update(tx, record); err != nil {
		u.log.Warnf("Failed to update medical record %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionRecordUpdate, entity.JSON{
		"record_id": id.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

// DeleteMedicalRecord removes a record. Clinical history is destroyed only by
// an admin; authoring doctors may amend but not delete.
func (u *medicalRecordUsecase) DeleteMedicalRecord(ctx context.Context, id uuid.UUID) error {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	if !caller.IsAdmin() {
		return ErrForbidden
	}

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete medical record %s: %+v", id, err)
		return err
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionRecordDelete, entity.JSON{
		"record_id": id.String(),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Medical record deleted: id=%s", id)
	return nil
}
