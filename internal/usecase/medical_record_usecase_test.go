package usecase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

func newMedicalRecordFixture() (*entity.Patient, *entity.Doctor) {
	patient := &entity.Patient{ID: uuid.New(), UserID: uuid.New()}
	doctor := &entity.Doctor{ID: uuid.New(), UserID: uuid.New(), Specialty: "Cardiology"}
	return patient, doctor
}

func TestCreateMedicalRecord_AdminNamesAuthor(t *testing.T) {
	patient, doctor := newMedicalRecordFixture()

	doctorRepo := &fakeDoctorRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Doctor, error) {
			assert.Equal(t, doctor.ID, id)
			return doctor, nil
		},
	}
	patientRepo := &fakePatientRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Patient, error) { return patient, nil },
	}
	var created *entity.MedicalRecord
	recordRepo := &fakeRecordRepo{
		createFn: func(record *entity.MedicalRecord) error {
			record.ID = uuid.New()
			created = record
			return nil
		},
	}
	audit := &fakeAuditService{}

	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	u := NewMedicalRecordUsecase(db, newTestLogger(), recordRepo, patientRepo, doctorRepo, &fakeAppointmentRepo{}, audit)

	resp, err := u.CreateMedicalRecord(callerContext(entity.RoleAdmin, uuid.New()), &dto.CreateMedicalRecordRequest{
		PatientID: patient.ID,
		DoctorID:  &doctor.ID,
		Diagnosis: "Hypertension",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, doctor.ID, created.DoctorID)
	assert.Equal(t, doctor.ID.String(), resp.DoctorID)
	assert.Contains(t, audit.actions, entity.AuditActionRecordCreate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMedicalRecord_AdminWithoutDoctorID(t *testing.T) {
	patient, _ := newMedicalRecordFixture()

	db, _ := newTestDB(t)
	u := NewMedicalRecordUsecase(db, newTestLogger(), &fakeRecordRepo{}, &fakePatientRepo{}, &fakeDoctorRepo{}, &fakeAppointmentRepo{}, &fakeAuditService{})

	_, err := u.CreateMedicalRecord(callerContext(entity.RoleAdmin, uuid.New()), &dto.CreateMedicalRecordRequest{
		PatientID: patient.ID,
		Diagnosis: "Hypertension",
	})
	assert.ErrorIs(t, err, ErrDoctorRequired)
}

func TestCreateMedicalRecord_DoctorWithoutProfile(t *testing.T) {
	patient, _ := newMedicalRecordFixture()

	doctorRepo := &fakeDoctorRepo{
		findByUserIDFn: func(userID uuid.UUID) (*entity.Doctor, error) { return nil, nil },
	}
	db, _ := newTestDB(t)
	u := NewMedicalRecordUsecase(db, newTestLogger(), &fakeRecordRepo{}, &fakePatientRepo{}, doctorRepo, &fakeAppointmentRepo{}, &fakeAuditService{})

	_, err := u.CreateMedicalRecord(callerContext(entity.RoleDoctor, uuid.New()), &dto.CreateMedicalRecordRequest{
		PatientID: patient.ID,
		Diagnosis: "Hypertension",
	})
	assert.ErrorIs(t, err, ErrNotDoctor)
}

func TestCreateMedicalRecord_CompletesLinkedAppointment(t *testing.T) {
	patient, doctor := newMedicalRecordFixture()
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Status:    entity.AppointmentStatusScheduled,
	}

	doctorRepo := &fakeDoctorRepo{
		findByUserIDFn: func(userID uuid.UUID) (*entity.Doctor, error) { return doctor, nil },
	}
	patientRepo := &fakePatientRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Patient, error) { return patient, nil },
	}
	var completedStatus entity.AppointmentStatus
	appointmentRepo := &fakeAppointmentRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Appointment, error) { return appointment, nil },
		updateStatusFn: func(id uuid.UUID, status entity.AppointmentStatus) error {
			assert.Equal(t, appointment.ID, id)
			completedStatus = status
			return nil
		},
	}

	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	u := NewMedicalRecordUsecase(db, newTestLogger(), &fakeRecordRepo{}, patientRepo, doctorRepo, appointmentRepo, &fakeAuditService{})

	_, err := u.CreateMedicalRecord(callerContext(entity.RoleDoctor, doctor.UserID), &dto.CreateMedicalRecordRequest{
		PatientID:     patient.ID,
		AppointmentID: &appointment.ID,
		Diagnosis:     "Hypertension",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentStatusCompleted, completedStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMedicalRecord_AppointmentMismatch(t *testing.T) {
	patient, doctor := newMedicalRecordFixture()
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patient.ID,
		DoctorID:  uuid.New(), // a different doctor's appointment
		Status:    entity.AppointmentStatusScheduled,
	}

	doctorRepo := &fakeDoctorRepo{
		findByUserIDFn: func(userID uuid.UUID) (*entity.Doctor, error) { return doctor, nil },
	}
	patientRepo := &fakePatientRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Patient, error) { return patient, nil },
	}
	appointmentRepo := &fakeAppointmentRepo{
		findByIDFn: func(id uuid.UUID) (*entity.Appointment, error) { return appointment, nil },
	}

	db, _ := newTestDB(t)
	u := NewMedicalRecordUsecase(db, newTestLogger(), &fakeRecordRepo{}, patientRepo, doctorRepo, appointmentRepo, &fakeAuditService{})

	_, err := u.CreateMedicalRecord(callerContext(entity.RoleDoctor, doctor.UserID), &dto.CreateMedicalRecordRequest{
		PatientID:     patient.ID,
		AppointmentID: &appointment.ID,
		Diagnosis:     "Hypertension",
	})
	assert.ErrorIs(t, err, ErrRecordMismatch)
}

func TestDeleteMedicalRecord_AdminOnly(t *testing.T) {
	patient, doctor := newMedicalRecordFixture()
	record := &entity.MedicalRecord{
		ID:        uuid.New(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Doctor:    *doctor,
		Patient:   *patient,
	}

	var deleted bool
	recordRepo := &fakeRecordRepo{
		findByIDFn: func(id uuid.UUID) (*entity.MedicalRecord, error) { return record, nil },
		deleteFn: func(id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	db, mock := newTestDB(t)
	u := NewMedicalRecordUsecase(db, newTestLogger(), recordRepo, &fakePatientRepo{}, &fakeDoctorRepo{}, &fakeAppointmentRepo{}, &fakeAuditService{})

	// The authoring doctor may amend but never delete.
	err := u.DeleteMedicalRecord(callerContext(entity.RoleDoctor, doctor.UserID), record.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, deleted)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = u.DeleteMedicalRecord(callerContext(entity.RoleAdmin, uuid.New()), record.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
