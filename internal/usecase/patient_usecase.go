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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	ListPatientAppointments(ctx context.Context, id uuid.UUID) (*dto.AppointmentListResponse, error)
	ListPatientMedicalRecords(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordListResponse, error)
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	recordRepo      repository.MedicalRecordRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		recordRepo:      recordRepo,
	}
}

// ListPatients returns every patient for admins. Doctors get only the
// patients they have an appointment with.
func (u *patientUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	var patients []entity.Patient
	var err error

	switch {
	case caller.IsAdmin():
		patients, err = u.patientRepo.FindAll(u.db.WithContext(ctx))
	case caller.IsDoctor():
		var ids []uuid.UUID
		ids, err = u.callerPatientIDs(ctx, caller.UserID)
		if err == nil && len(ids) > 0 {
			patients, err = u.patientRepo.FindByIDs(u.db.WithContext(ctx), ids)
		}
	default:
		return nil, ErrForbidden
	}

	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    int64(len(patients)),
	}, nil
}

// GetPatient returns one patient record. Allowed for the patient themself,
// an admin, or a doctor who has an appointment with the patient.
func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.checkPatientAccess(ctx, caller, patient); err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// ListPatientAppointments returns the appointment history for one patient,
// with the same access rules as GetPatient.
func (u *patientUsecase) ListPatientAppointments(ctx context.Context, id uuid.UUID) (*dto.AppointmentListResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.checkPatientAccess(ctx, caller, patient); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), &entity.AppointmentFilter{PatientID: &id})
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", id, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

// ListPatientMedicalRecords returns the medical history for one patient, with
// the same access rules as GetPatient.
func (u *patientUsecase) ListPatientMedicalRecords(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.checkPatientAccess(ctx, caller, patient); err != nil {
		return nil, err
	}

	records, err := u.recordRepo.FindByPatientID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to list medical records for patient %s: %+v", id, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   int64(len(records)),
	}, nil
}

// checkPatientAccess allows the patient themself, an admin, or a doctor who
// has an appointment with the patient.
func (u *patientUsecase) checkPatientAccess(ctx context.Context, caller policy.Caller, patient *entity.Patient) error {
	if policy.Allows(caller, &patient.UserID, nil) {
		return nil
	}
	if caller.IsDoctor() {
		ids, err := u.callerPatientIDs(ctx, caller.UserID)
		if err != nil {
			return err
		}
		for _, pid := range ids {
			if pid == patient.ID {
				return nil
			}
		}
	}
	return ErrForbidden
}

// UpdatePatient patches the medical profile. Only the patient themself or an
// admin may change it.
func (u *patientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if !policy.Allows(caller, &patient.UserID, nil) {
		return nil, ErrForbidden
	}

	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.DateOfBirth = &dob
	}
	if req.Gender != nil {
		patient.Gender = entity.Gender(*req.Gender)
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}
	if req.CurrentMedications != nil {
		patient.CurrentMedications = *req.CurrentMedications
	}

	if err := u.patientRepo.Update(u.db.WithContext(ctx), patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// callerPatientIDs resolves the doctor profile for a user and returns the IDs
// of patients that doctor has appointments with.
func (u *patientUsecase) callerPatientIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrForbidden
	}
	return u.appointmentRepo.DistinctPatientIDs(u.db.WithContext(ctx), doctor.ID)
}
