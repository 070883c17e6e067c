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
	ErrSessionNotFound     = errors.New("telemedicine session not found")
	ErrSessionExists       = errors.New("appointment already has a telemedicine session")
	ErrNotVideoAppointment = errors.New("appointment is not a video appointment")
	ErrSessionTransition   = errors.New("session status transition not allowed")
)

type TelemedicineUsecase interface {
	ProvisionSession(ctx context.Context, req *dto.ProvisionSessionRequest) (*dto.TelemedicineSessionResponse, error)
	ListSessions(ctx context.Context) (*dto.TelemedicineSessionListResponse, error)
	GetSession(ctx context.Context, id uuid.UUID) (*dto.TelemedicineSessionResponse, error)
	StartSession(ctx context.Context, id uuid.UUID) (*dto.StartSessionResponse, error)
	EndSession(ctx context.Context, id uuid.UUID, req *dto.EndSessionRequest) (*dto.TelemedicineSessionResponse, error)
}

type telemedicineUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	sessionRepo     repository.TelemedicineSessionRepository
	appointmentRepo repository.AppointmentRepository
	videoProvider   service.VideoProvider
	auditService    service.AuditService
}

func NewTelemedicineUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.TelemedicineSessionRepository,
	appointmentRepo repository.AppointmentRepository,
	videoProvider service.VideoProvider,
	auditService service.AuditService,
) TelemedicineUsecase {
	return &telemedicineUsecase{
		db:              db,
		log:             log,
		sessionRepo:     sessionRepo,
		appointmentRepo: appointmentRepo,
		videoProvider:   videoProvider,
		auditService:    auditService,
	}
}

// ProvisionSession creates or refreshes the meeting for a video appointment.
// A missing session gets a new row; a session that is still scheduled gets
// fresh meeting credentials. Sessions that already started or finished cannot
// be re-provisioned. Only the assigned doctor or an admin may provision.
func (u *telemedicineUsecase) ProvisionSession(ctx context.Context, req *dto.ProvisionSessionRequest) (*dto.TelemedicineSessionResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !policy.Allows(caller, nil, &appointment.Doctor.UserID) {
		return nil, ErrForbidden
	}

	if !appointment.IsVideo() {
		return nil, ErrNotVideoAppointment
	}
	if !appointment.Doctor.IsAvailableForVideoCall {
		return nil, ErrVideoNotAvailable
	}

	existing, err := u.sessionRepo.FindByAppointmentID(u.db.WithContext(ctx), req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != entity.SessionStatusScheduled {
		return nil, ErrSessionExists
	}

	startTime, err := time.Parse("2006-01-02 15:04", appointment.Date.Format("2006-01-02")+" "+appointment.Time)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	topic := fmt.Sprintf("Consultation with Dr. %s", appointment.Doctor.User.Name)
	meeting, err := u.videoProvider.CreateMeeting(ctx, topic, startTime, appointment.Duration)
	if err != nil {
		u.log.Warnf("Failed to create meeting for appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}

	session := existing
	if session == nil {
		session = &entity.TelemedicineSession{
			AppointmentID: req.AppointmentID,
			Status:        entity.SessionStatusScheduled,
		}
	}
	session.MeetingID = meeting.ID
	session.MeetingPassword = meeting.Password
	session.JoinURL = meeting.JoinURL
	session.HostURL = meeting.HostURL
	session.Duration = appointment.Duration

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if existing != nil {
		err = u.sessionRepo.Update(tx, session)
	} else {
		err = u.sessionRepo.Create(tx, session)
	}
	if err != nil {
		if isDuplicateKeyError(err, "appointment_id") {
			return nil, ErrSessionExists
		}
		u.log.Warnf("Failed to save session: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionSessionProvision, entity.JSON{
		"session_id":     session.ID.String(),
		"appointment_id": req.AppointmentID.String(),
		"meeting_id":     meeting.ID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Session provisioned: id=%s, appointment=%s", session.ID, req.AppointmentID)
	return converter.SessionToResponse(session), nil
}

// ListSessions is scoped to the caller: patients and doctors only see
// sessions on their own appointments.
func (u *telemedicineUsecase) ListSessions(ctx context.Context) (*dto.TelemedicineSessionListResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	sessions, err := u.sessionRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list sessions: %+v", err)
		return nil, err
	}

	if !caller.IsAdmin() {
		visible := make([]entity.TelemedicineSession, 0, len(sessions))
		for _, session := range sessions {
			if policy.Allows(caller, &session.Appointment.Patient.UserID, &session.Appointment.Doctor.UserID) {
				visible = append(visible, session)
			}
		}
		sessions = visible
	}

	return &dto.TelemedicineSessionListResponse{
		Sessions: converter.SessionsToResponses(sessions),
		Total:    int64(len(sessions)),
	}, nil
}

func (u *telemedicineUsecase) GetSession(ctx context.Context, id uuid.UUID) (*dto.TelemedicineSessionResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", id, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if !policy.Allows(caller, &session.Appointment.Patient.UserID, &session.Appointment.Doctor.UserID) {
		return nil, ErrForbidden
	}

	return converter.SessionToResponse(session), nil
}

// StartSession moves the session to in-progress and hands the host URL to the
// doctor. Only the assigned doctor or an admin may start a session.
func (u *telemedicineUsecase) StartSession(ctx context.Context, id uuid.UUID) (*dto.StartSessionResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", id, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if !policy.Allows(caller, nil, &session.Appointment.Doctor.UserID) {
		return nil, ErrForbidden
	}

	if session.Status == entity.SessionStatusInProgress {
		return nil, ErrSessionTransition
	}
	if !session.Status.CanTransitionTo(entity.SessionStatusInProgress) {
		return nil, ErrSessionTransition
	}

	now := time.Now().UTC()
	session.Status = entity.SessionStatusInProgress
	session.StartTime = &now

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.sessionRepo.Update(tx, session); err != nil {
		u.log.Warnf("Failed to start session %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionSessionStart, entity.JSON{
		"session_id": id.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Session started: id=%s", id)
	return &dto.StartSessionResponse{
		Session: converter.SessionToResponse(session),
		HostURL: session.HostURL,
	}, nil
}

// EndSession completes the session, records the actual duration, and marks
// the underlying appointment completed in the same transaction.
func (u *telemedicineUsecase) EndSession(ctx context.Context, id uuid.UUID, req *dto.EndSessionRequest) (*dto.TelemedicineSessionResponse, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", id, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if !policy.Allows(caller, nil, &session.Appointment.Doctor.UserID) {
		return nil, ErrForbidden
	}

	if !session.IsInProgress() {
		return nil, ErrSessionTransition
	}

	now := time.Now().UTC()
	session.Status = entity.SessionStatusCompleted
	session.EndTime = &now
	if session.StartTime != nil {
		session.Duration = int(now.Sub(*session.StartTime).Minutes())
	}
	if req.Notes != "" {
		session.Notes = req.Notes
	}
	if req.RecordingURL != "" {
		session.RecordingURL = req.RecordingURL
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.sessionRepo.Update(tx, session); err != nil {
		u.log.Warnf("Failed to end session %s: %+v", id, err)
		return nil, err
	}

	if session.Appointment.Status.CanTransitionTo(entity.AppointmentStatusCompleted) {
		if err := u.appointmentRepo.UpdateStatus(tx, session.AppointmentID, entity.AppointmentStatusCompleted); err != nil {
			u.log.Warnf("Failed to complete appointment %s: %+v", session.AppointmentID, err)
			return nil, err
		}
	}

	if err := u.auditService.Record(ctx, tx, &caller.UserID, entity.AuditActionSessionEnd, entity.JSON{
		"session_id":       id.String(),
		"duration_minutes": session.Duration,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Session ended: id=%s, duration=%dm", id, session.Duration)
	return converter.SessionToResponse(session), nil
}
