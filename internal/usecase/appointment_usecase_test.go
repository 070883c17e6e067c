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

func scheduledAppointment(patientUserID, doctorUserID uuid.UUID) *entity.Appointment {
	return &entity.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      time.Now().UTC().AddDate(0, 0, 7),
		Time:      "10:00",
		Duration:  30,
		Type:      entity.AppointmentTypeVideo,
		Status:    entity.AppointmentStatusScheduled,
		Patient:   entity.Patient{ID: uuid.New(), UserID: patientUserID},
		Doctor:    entity.Doctor{ID: uuid.New(), UserID: doctorUserID, IsAvailableForVideoCall: true},
	}
}

func TestUpdateAppointment_PatientCancelCascadesToSession(t *testing.T) {
	patientUserID := uuid.New()
	appointment := scheduledAppointment(patientUserID, uuid.New())
	session := &entity.TelemedicineSession{
		ID:            uuid.New(),
		AppointmentID: appointment.ID,
		Status:        entity.SessionStatusScheduled,
	}

	var savedStatus entity.AppointmentStatus
	appointmentRepo := &fakeAppointmentRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Appointment, error) { return appointment, nil },
		updateFn: func(a *entity.Appointment) error {
			savedStatus = a.Status
			return nil
		},
	}
	var savedSessionStatus entity.SessionStatus
	sessionRepo := &fakeSessionRepo{
		findByAppointmentIDFn: func(appointmentID uuid.UUID) (*entity.TelemedicineSession, error) {
			return session, nil
		},
		updateFn: func(s *entity.TelemedicineSession) error {
			savedSessionStatus = s.Status
			return nil
		},
	}
	audit := &fakeAuditService{}

	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, &fakePatientRepo{}, &fakeDoctorRepo{}, sessionRepo, service.NewMockVideoProvider(), audit)

	status := "cancelled"
	resp, err := u.UpdateAppointment(callerContext(entity.RolePatient, patientUserID), appointment.ID, &dto.UpdateAppointmentRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentStatusCancelled, savedStatus)
	assert.Equal(t, entity.SessionStatusCancelled, savedSessionStatus)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Contains(t, audit.actions, entity.AuditActionAppointmentCancel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppointment_PatientMayOnlyCancel(t *testing.T) {
	patientUserID := uuid.New()
	appointment := scheduledAppointment(patientUserID, uuid.New())

	appointmentRepo := &fakeAppointmentRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Appointment, error) { return appointment, nil },
	}
	db, _ := newTestDB(t)
	u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, &fakePatientRepo{}, &fakeDoctorRepo{}, &fakeSessionRepo{}, service.NewMockVideoProvider(), &fakeAuditService{})
	ctx := callerContext(entity.RolePatient, patientUserID)

	newDate := "2026-12-01"
	_, err := u.UpdateAppointment(ctx, appointment.ID, &dto.UpdateAppointmentRequest{Date: &newDate})
	assert.ErrorIs(t, err, ErrPatientOnlyCancel)

	completed := "completed"
	_, err = u.UpdateAppointment(ctx, appointment.ID, &dto.UpdateAppointmentRequest{Status: &completed})
	assert.ErrorIs(t, err, ErrPatientOnlyCancel)

	notes := "please call me"
	cancelled := "cancelled"
	_, err = u.UpdateAppointment(ctx, appointment.ID, &dto.UpdateAppointmentRequest{Status: &cancelled, Notes: &notes})
	assert.ErrorIs(t, err, ErrPatientOnlyCancel)
}

func TestDeleteAppointment_RemovesSessionFirst(t *testing.T) {
	appointment := scheduledAppointment(uuid.New(), uuid.New())

	var ops []string
	appointmentRepo := &fakeAppointmentRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Appointment, error) { return appointment, nil },
		deleteFn: func(id uuid.UUID) error {
			ops = append(ops, "appointment")
			return nil
		},
	}
	sessionRepo := &fakeSessionRepo{
		deleteByAppointmentIDFn: func(appointmentID uuid.UUID) error {
			ops = append(ops, "session")
			return nil
		},
	}
	audit := &fakeAuditService{}

	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, &fakePatientRepo{}, &fakeDoctorRepo{}, sessionRepo, service.NewMockVideoProvider(), audit)

	err := u.DeleteAppointment(callerContext(entity.RoleAdmin, uuid.New()), appointment.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"session", "appointment"}, ops)
	assert.Contains(t, audit.actions, entity.AuditActionAppointmentDelete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAppointment_NonAdminForbidden(t *testing.T) {
	doctorUserID := uuid.New()
	appointment := scheduledAppointment(uuid.New(), doctorUserID)

	var deleted bool
	appointmentRepo := &fakeAppointmentRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Appointment, error) { return appointment, nil },
		deleteFn: func(id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	db, _ := newTestDB(t)
	u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, &fakePatientRepo{}, &fakeDoctorRepo{}, &fakeSessionRepo{}, service.NewMockVideoProvider(), &fakeAuditService{})

	err := u.DeleteAppointment(callerContext(entity.RoleDoctor, doctorUserID), appointment.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, deleted)
}
