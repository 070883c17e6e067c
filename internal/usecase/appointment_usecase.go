package usecase

import (
	"context"
	"errors"
	"fmt"
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
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotTaken               = errors.New("doctor already has an appointment at this slot")
	ErrVideoNotAvailable       = errors.New("doctor is not available for video consultations")
	ErrInvalidStatus           = errors.New("invalid appointment status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrAppointmentInPast       = errors.New("cannot book an appointment in the past")
	ErrPatientOnlyCancel       = errors.New("patients may only cancel their appointments")
	ErrAppointmentNotEditable  = errors.New("only scheduled appointments can be rescheduled")
	ErrAppointmentReferenced   = errors.New("appointment is referenced by medical records")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	sessionRepo     repository.TelemedicineSessionRepository
	videoProvider   service.VideoProvider
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	sessionRepo repository.TelemedicineSessionRepository,
	videoProvider service.VideoProvider,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		sessionRepo:     sessionRepo,
		videoProvider:   videoProvider,
		auditService:    auditService,
	}
}

// CreateAppointment books a slot with a doctor.
//
// The (doctor, date, time) unique index is the authority on double booking:
// the FindBySlot pre-check gives a friendly error on the common path, and the
// 23505 mapping catches the race where two requests pass the pre-check
// together. Video appointments get a telemedicine session provisioned in the
// same transaction.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Patients can only book for themselves; doctors and admins may book on
	// a patient's behalf.
	if caller.IsPatient() && caller.UserID != patient.UserID {
		return nil, ErrForbidden
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if !validTimeOfDay(req.Time) {
		return nil, ErrInvalidTimeFormat
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrAppointmentInPast
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointmentType := entity.AppointmentType(req.Type)
	if appointmentType == "" {
		appointmentType = entity.AppointmentTypeInPerson
	}
	if appointmentType == entity.AppointmentTypeVideo && !doctor.IsAvailableForVideoCall {
		return nil, ErrVideoNotAvailable
	}

	existing, err := u.appointmentRepo.FindBySlot(u.db.WithContext(ctx), req.DoctorID, req.Date, req.Time)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	duration := req.Duration
	if duration == 0 {
		duration = 30
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Duration:  duration,
		Type:      appointmentType,
		Status:    entity.AppointmentStatusScheduled,
		Reason:    req.Reason,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if appointment.IsVideo() {
		if err := u.provisionSession(ctx, tx, appointment, doctor); err != nil {
			return nil, err
		}
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
		"date":           req.Date,
		"time":           req.Time,
		"type":           string(appointmentType),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, slot=%s %s", appointment.ID, req.DoctorID, req.Date, req.Time)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// ListAppointments returns appointments scoped to the caller: patients see
// their own, doctors see their schedule, admins see everything the filter
// matches.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if filter == nil {
		filter = &entity.AppointmentFilter{}
	}

	switch {
	case caller.IsPatient():
		patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		filter.PatientID = &patient.ID
	case caller.IsDoctor():
		doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), caller.UserID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		filter.DoctorID = &doctor.ID
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !policy.Allows(caller, &appointment.Patient.UserID, &appointment.Doctor.UserID) {
		return nil, ErrForbidden
	}

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateAppointment reschedules or changes the status of an appointment.
// Status changes go through the transition table; patients may only cancel.
// Switching the type to video provisions a telemedicine session if none
// exists, and cancelling cascades to the session, both in the same
// transaction.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !policy.Allows(caller, &appointment.Patient.UserID, &appointment.Doctor.UserID) {
		return nil, ErrForbidden
	}

	// Patients get exactly one move here: cancelling their own appointment.
	if caller.IsPatient() {
		otherFields := req.Date != nil || req.Time != nil || req.Duration != nil ||
			req.Type != nil || req.Reason != nil || req.Notes != nil
		if otherFields || req.Status == nil || entity.AppointmentStatus(*req.Status) != entity.AppointmentStatusCancelled {
			return nil, ErrPatientOnlyCancel
		}
	}

	cancelled := false
	if req.Status != nil {
		next := entity.AppointmentStatus(*req.Status)
		if !next.IsValid() {
			return nil, ErrInvalidStatus
		}
		if !appointment.Status.CanTransitionTo(next) {
			return nil, ErrInvalidStatusTransition
		}
		cancelled = next == entity.AppointmentStatusCancelled && appointment.Status != next
		appointment.Status = next
	}

	becameVideo := false
	if req.Type != nil {
		next := entity.AppointmentType(*req.Type)
		if next == entity.AppointmentTypeVideo && !appointment.Doctor.IsAvailableForVideoCall {
			return nil, ErrVideoNotAvailable
		}
		becameVideo = next == entity.AppointmentTypeVideo && appointment.Type != next
		appointment.Type = next
	}

	if req.Date != nil || req.Time != nil {
		if !appointment.IsScheduled() {
			return nil, ErrAppointmentNotEditable
		}
		if req.Date != nil {
			date, err := time.Parse("2006-01-02", *req.Date)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			appointment.Date = date
		}
		if req.Time != nil {
			if !validTimeOfDay(*req.Time) {
				return nil, ErrInvalidTimeFormat
			}
			appointment.Time = *req.Time
		}
	}
	if req.Duration != nil {
		appointment.Duration = *req.Duration
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if becameVideo {
		session, err := u.sessionRepo.FindByAppointmentID(tx, id)
		if err != nil {
			return nil, err
		}
		if session == nil {
			if err := u.provisionSession(ctx, tx, appointment, &appointment.Doctor); err != nil {
				return nil, err
			}
		}
	}

	if cancelled {
		session, err := u.sessionRepo.FindByAppointmentID(tx, id)
		if err != nil {
			return nil, err
		}
		if session != nil && session.Status.CanTransitionTo(entity.SessionStatusCancelled) {
			session.Status = entity.SessionStatusCancelled
			if err := u.sessionRepo.Update(tx, session); err != nil {
				u.log.Warnf("Failed to cancel session for appointment %s: %+v", id, err)
				return nil, err
			}
		}
	}

	action := entity.AuditActionAppointmentUpdate
	if cancelled {
		action = entity.AuditActionAppointmentCancel
	}
	if err := u.auditService.Record(ctx, tx, &caller.UserID, action, entity.JSON{
		"appointment_id": id.String(),
		"status":         string(appointment.Status),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil || full == nil {
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// DeleteAppointment is admin-only. The telemedicine session goes first so the
// foreign key on appointment_id never blocks the delete.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	if !caller.IsAdmin() {
		return ErrForbidden
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.sessionRepo.DeleteByAppointmentID(tx, id); err != nil {
		u.log.Warnf("Failed to delete session for appointment %s: %+v", id, err)
		return err
	}
	if err := u.appointmentRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err, "appointment") {
			return ErrAppointmentReferenced
		}
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionAppointmentDelete, entity.JSON{
		"appointment_id": id.String(),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}

// provisionSession creates the meeting with the video provider and stores the
// session row on the given transaction.
func (u *appointmentUsecase) provisionSession(ctx context.Context, tx *gorm.DB, appointment *entity.Appointment, doctor *entity.Doctor) error {
	topic := fmt.Sprintf("Consultation with Dr. %s", doctor.User.Name)
	startTime, err := time.Parse("2006-01-02 15:04", appointment.Date.Format("2006-01-02")+" "+appointment.Time)
	if err != nil {
		return ErrInvalidTimeFormat
	}

	meeting, err := u.videoProvider.CreateMeeting(ctx, topic, startTime, appointment.Duration)
	if err != nil {
		u.log.Warnf("Failed to create meeting for appointment %s: %+v", appointment.ID, err)
		return err
	}

	session := &entity.TelemedicineSession{
		AppointmentID:   appointment.ID,
		MeetingID:       meeting.ID,
		MeetingPassword: meeting.Password,
		JoinURL:         meeting.JoinURL,
		HostURL:         meeting.HostURL,
		Duration:        appointment.Duration,
		Status:          entity.SessionStatusScheduled,
	}

	if err := u.sessionRepo.Create(tx, session); err != nil {
		u.log.Warnf("Failed to create session for appointment %s: %+v", appointment.ID, err)
		return err
	}

	return nil
}

// validTimeOfDay reports whether s is a 24-hour HH:MM clock value
func validTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
