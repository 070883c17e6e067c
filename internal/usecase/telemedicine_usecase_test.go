package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/service"
)

func inProgressSession(doctorUserID uuid.UUID) *entity.TelemedicineSession {
	appointment := scheduledAppointment(uuid.New(), doctorUserID)
	started := time.Now().UTC().Add(-25 * time.Minute)
	return &entity.TelemedicineSession{
		ID:            uuid.New(),
		AppointmentID: appointment.ID,
		MeetingID:     "83921004567",
		Status:        entity.SessionStatusInProgress,
		StartTime:     &started,
		Duration:      30,
		Appointment:   *appointment,
	}
}

func TestEndSession_CompletesAppointment(t *testing.T) {
	doctorUserID := uuid.New()
	session := inProgressSession(doctorUserID)

	var savedSession *entity.TelemedicineSession
	sessionRepo := &fakeSessionRepo{
		findByIDFn: func(id uuid.UUID) (*entity.TelemedicineSession, error) { return session, nil },
		updateFn: func(s *entity.TelemedicineSession) error {
			savedSession = s
			return nil
		},
	}
	var completedID uuid.UUID
	var completedStatus entity.AppointmentStatus
	appointmentRepo := &fakeAppointmentRepo{
		updateStatusFn: func(id uuid.UUID, status entity.AppointmentStatus) error {
			completedID = id
			completedStatus = status
			return nil
		},
	}
	audit := &fakeAuditService{}

	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	u := NewTelemedicineUsecase(db, newTestLogger(), sessionRepo, appointmentRepo, service.NewMockVideoProvider(), audit)

	resp, err := u.EndSession(callerContext(entity.RoleDoctor, doctorUserID), session.ID, &dto.EndSessionRequest{Notes: "Follow up in two weeks"})
	require.NoError(t, err)

	assert.Equal(t, session.AppointmentID, completedID)
	assert.Equal(t, entity.AppointmentStatusCompleted, completedStatus)
	require.NotNil(t, savedSession)
	assert.Equal(t, entity.SessionStatusCompleted, savedSession.Status)
	assert.NotNil(t, savedSession.EndTime)
	assert.GreaterOrEqual(t, savedSession.Duration, 25)
	assert.Equal(t, "completed", resp.Status)
	assert.Contains(t, audit.actions, entity.AuditActionSessionEnd)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEndSession_RequiresInProgress(t *testing.T) {
	doctorUserID := uuid.New()
	session := inProgressSession(doctorUserID)
	session.Status = entity.SessionStatusScheduled

	sessionRepo := &fakeSessionRepo{
		findByIDFn: func(id uuid.UUID) (*entity.TelemedicineSession, error) { return session, nil },
	}
	db, _ := newTestDB(t)
	u := NewTelemedicineUsecase(db, newTestLogger(), sessionRepo, &fakeAppointmentRepo{}, service.NewMockVideoProvider(), &fakeAuditService{})

	_, err := u.EndSession(callerContext(entity.RoleDoctor, doctorUserID), session.ID, &dto.EndSessionRequest{})
	assert.ErrorIs(t, err, ErrSessionTransition)
}

func TestEndSession_PatientForbidden(t *testing.T) {
	session := inProgressSession(uuid.New())

	sessionRepo := &fakeSessionRepo{
		findByIDFn: func(id uuid.UUID) (*entity.TelemedicineSession, error) { return session, nil },
	}
	db, _ := newTestDB(t)
	u := NewTelemedicineUsecase(db, newTestLogger(), sessionRepo, &fakeAppointmentRepo{}, service.NewMockVideoProvider(), &fakeAuditService{})

	_, err := u.EndSession(callerContext(entity.RolePatient, session.Appointment.Patient.UserID), session.ID, &dto.EndSessionRequest{})
	assert.ErrorIs(t, err, ErrForbidden)
}
