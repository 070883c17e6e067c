package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/policy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	SaveOwnProfile(ctx context.Context, req *dto.DoctorProfileRequest) (*dto.DoctorResponse, error)
	ListDoctorAppointments(ctx context.Context, id uuid.UUID) (*dto.AppointmentListResponse, error)
	ListDoctorPatients(ctx context.Context, id uuid.UUID) (*dto.PatientListResponse, error)
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

// ListDoctors is visible to every authenticated user so patients can browse
// specialties and availability before booking.
func (u *doctorUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   int64(len(doctors)),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// UpdateDoctor patches the professional profile and availability. Only the
// doctor themself or an admin may change it.
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !policy.Allows(caller, nil, &doctor.UserID) {
		return nil, ErrForbidden
	}

	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}
	if req.Qualification != nil {
		doctor.Qualification = *req.Qualification
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if req.LicenseNumber != nil {
		doctor.LicenseNumber = *req.LicenseNumber
	}
	if req.ConsultationFee != nil {
		fee, err := decimal.NewFromString(*req.ConsultationFee)
		if err != nil {
			return nil, ErrInvalidFee
		}
		doctor.ConsultationFee = fee
	}
	if req.AvailableDays != nil {
		days, err := json.Marshal(req.AvailableDays)
		if err != nil {
			return nil, err
		}
		doctor.AvailableDays = days
	}
	if req.AvailableTimeStart != nil {
		if !validTimeOfDay(*req.AvailableTimeStart) {
			return nil, ErrInvalidTimeFormat
		}
		doctor.AvailableTimeStart = *req.AvailableTimeStart
	}
	if req.AvailableTimeEnd != nil {
		if !validTimeOfDay(*req.AvailableTimeEnd) {
			return nil, ErrInvalidTimeFormat
		}
		doctor.AvailableTimeEnd = *req.AvailableTimeEnd
	}
	if req.IsAvailableForVideoCall != nil {
		doctor.IsAvailableForVideoCall = *req.IsAvailableForVideoCall
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}

	if err := u.doctorRepo.Update(u.db.WithContext(ctx), doctor); err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseAlreadyExists
		}
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// SaveOwnProfile creates or replaces the professional profile of the calling
// doctor, resolved from the JWT rather than a path parameter.
func (u *doctorUsecase) SaveOwnProfile(ctx context.Context, req *dto.DoctorProfileRequest) (*dto.DoctorResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	if !caller.IsDoctor() {
		return nil, ErrForbidden
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %s: %+v", caller.UserID, err)
		return nil, err
	}

	isNew := doctor == nil
	if isNew {
		doctor = &entity.Doctor{UserID: caller.UserID}
	}

	doctor.Specialty = req.Specialty
	doctor.Qualification = req.Qualification
	doctor.Experience = req.Experience
	doctor.LicenseNumber = req.LicenseNumber
	doctor.IsAvailableForVideoCall = req.IsAvailableForVideoCall
	doctor.Bio = req.Bio

	if req.ConsultationFee != "" {
		fee, err := decimal.NewFromString(req.ConsultationFee)
		if err != nil {
			return nil, ErrInvalidFee
		}
		doctor.ConsultationFee = fee
	}
	if req.AvailableDays != nil {
		days, err := json.Marshal(req.AvailableDays)
		if err != nil {
			return nil, err
		}
		doctor.AvailableDays = days
	}
	if req.AvailableTimeStart != "" {
		if !validTimeOfDay(req.AvailableTimeStart) {
			return nil, ErrInvalidTimeFormat
		}
		doctor.AvailableTimeStart = req.AvailableTimeStart
	}
	if req.AvailableTimeEnd != "" {
		if !validTimeOfDay(req.AvailableTimeEnd) {
			return nil, ErrInvalidTimeFormat
		}
		doctor.AvailableTimeEnd = req.AvailableTimeEnd
	}

	if isNew {
		err = u.doctorRepo.Create(u.db.WithContext(ctx), doctor)
	} else {
		err = u.doctorRepo.Update(u.db.WithContext(ctx), doctor)
	}
	if err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseAlreadyExists
		}
		u.log.Warnf("Failed to save doctor profile for user %s: %+v", caller.UserID, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// ListDoctorAppointments returns the schedule of one doctor. Only the doctor
// themself or an admin may read it.
func (u *doctorUsecase) ListDoctorAppointments(ctx context.Context, id uuid.UUID) (*dto.AppointmentListResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !policy.Allows(caller, nil, &doctor.UserID) {
		return nil, ErrForbidden
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), &entity.AppointmentFilter{DoctorID: &id})
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", id, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

// ListDoctorPatients returns the distinct patients a doctor has seen. Only
// the doctor themself or an admin may read it.
func (u *doctorUsecase) ListDoctorPatients(ctx context.Context, id uuid.UUID) (*dto.PatientListResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !policy.Allows(caller, nil, &doctor.UserID) {
		return nil, ErrForbidden
	}

	ids, err := u.appointmentRepo.DistinctPatientIDs(u.db.WithContext(ctx), doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to resolve patients for doctor %s: %+v", id, err)
		return nil, err
	}

	var patients []entity.Patient
	if len(ids) > 0 {
		patients, err = u.patientRepo.FindByIDs(u.db.WithContext(ctx), ids)
		if err != nil {
			u.log.Warnf("Failed to list patients for doctor %s: %+v", id, err)
			return nil, err
		}
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    int64(len(patients)),
	}, nil
}
