package usecase

import (
	"context"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/policy"
)

// newTestDB hands out a gorm handle over sqlmock so usecases can open and
// commit real transactions without a database. Repository calls are faked
// below, so only Begin/Commit cross the driver.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func callerContext(role entity.Role, userID uuid.UUID) context.Context {
	return middleware.WithCaller(context.Background(), policy.Caller{UserID: userID, Role: role})
}

type fakeAppointmentRepo struct {
	createFn       func(appointment *entity.Appointment) error
	findByIDFn     func(id uuid.UUID) (*entity.Appointment, error)
	findAllFn      func(filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	findBySlotFn   func(doctorID uuid.UUID, date, timeOfDay string) (*entity.Appointment, error)
	updateFn       func(appointment *entity.Appointment) error
	updateStatusFn func(id uuid.UUID, status entity.AppointmentStatus) error
	deleteFn       func(id uuid.UUID) error
}

func (f *fakeAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	if f.createFn != nil {
		return f.createFn(appointment)
	}
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindAll(_ *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	if f.findAllFn != nil {
		return f.findAllFn(filter)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindBySlot(_ *gorm.DB, doctorID uuid.UUID, date, timeOfDay string) (*entity.Appointment, error) {
	if f.findBySlotFn != nil {
		return f.findBySlotFn(doctorID, date, timeOfDay)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) DistinctPatientIDs(_ *gorm.DB, doctorID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) Update(_ *gorm.DB, appointment *entity.Appointment) error {
	if f.updateFn != nil {
		return f.updateFn(appointment)
	}
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(id, status)
	}
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

type fakePatientRepo struct {
	findByIDFn     func(id uuid.UUID) (*entity.Patient, error)
	findByUserIDFn func(userID uuid.UUID) (*entity.Patient, error)
}

func (f *fakePatientRepo) Create(_ *gorm.DB, patient *entity.Patient) error { return nil }

func (f *fakePatientRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakePatientRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(userID)
	}
	return nil, nil
}

func (f *fakePatientRepo) FindByIDs(_ *gorm.DB, ids []uuid.UUID) ([]entity.Patient, error) {
	return nil, nil
}

func (f *fakePatientRepo) FindAll(_ *gorm.DB) ([]entity.Patient, error) { return nil, nil }

func (f *fakePatientRepo) Update(_ *gorm.DB, patient *entity.Patient) error { return nil }

func (f *fakePatientRepo) DeleteByUserID(_ *gorm.DB, userID uuid.UUID) error { return nil }

type fakeDoctorRepo struct {
	findByIDFn     func(id uuid.UUID) (*entity.Doctor, error)
	findByUserIDFn func(userID uuid.UUID) (*entity.Doctor, error)
}

func (f *fakeDoctorRepo) Create(_ *gorm.DB, doctor *entity.Doctor) error { return nil }

func (f *fakeDoctorRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(userID)
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindAll(_ *gorm.DB) ([]entity.Doctor, error) { return nil, nil }

func (f *fakeDoctorRepo) Update(_ *gorm.DB, doctor *entity.Doctor) error { return nil }

func (f *fakeDoctorRepo) DeleteByUserID(_ *gorm.DB, userID uuid.UUID) error { return nil }

type fakeSessionRepo struct {
	createFn                func(session *entity.TelemedicineSession) error
	findByIDFn              func(id uuid.UUID) (*entity.TelemedicineSession, error)
	findByAppointmentIDFn   func(appointmentID uuid.UUID) (*entity.TelemedicineSession, error)
	updateFn                func(session *entity.TelemedicineSession) error
	deleteByAppointmentIDFn func(appointmentID uuid.UUID) error
}

func (f *fakeSessionRepo) Create(_ *gorm.DB, session *entity.TelemedicineSession) error {
	if f.createFn != nil {
		return f.createFn(session)
	}
	return nil
}

func (f *fakeSessionRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.TelemedicineSession, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindByAppointmentID(_ *gorm.DB, appointmentID uuid.UUID) (*entity.TelemedicineSession, error) {
	if f.findByAppointmentIDFn != nil {
		return f.findByAppointmentIDFn(appointmentID)
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindAll(_ *gorm.DB) ([]entity.TelemedicineSession, error) {
	return nil, nil
}

func (f *fakeSessionRepo) Update(_ *gorm.DB, session *entity.TelemedicineSession) error {
	if f.updateFn != nil {
		return f.updateFn(session)
	}
	return nil
}

func (f *fakeSessionRepo) DeleteByAppointmentID(_ *gorm.DB, appointmentID uuid.UUID) error {
	if f.deleteByAppointmentIDFn != nil {
		return f.deleteByAppointmentIDFn(appointmentID)
	}
	return nil
}

type fakeRecordRepo struct {
	createFn   func(record *entity.MedicalRecord) error
	findByIDFn func(id uuid.UUID) (*entity.MedicalRecord, error)
	deleteFn   func(id uuid.UUID) error
}

func (f *fakeRecordRepo) Create(_ *gorm.DB, record *entity.MedicalRecord) error {
	if f.createFn != nil {
		return f.createFn(record)
	}
	return nil
}

func (f *fakeRecordRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, nil
}

func (f *fakeRecordRepo) FindAll(_ *gorm.DB) ([]entity.MedicalRecord, error) { return nil, nil }

func (f *fakeRecordRepo) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) FindByDoctorID(_ *gorm.DB, doctorID uuid.UUID) ([]entity.MedicalRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) Update(_ *gorm.DB, record *entity.MedicalRecord) error { return nil }

func (f *fakeRecordRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

// fakeAuditService records actions in order so tests can assert the trail.
type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) Record(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action string, _ entity.JSON) error {
	f.actions = append(f.actions, action)
	return nil
}
