package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

type mockAppointmentUsecase struct {
	createFn func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	listFn   func(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	return m.listFn(ctx, filter)
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockAppointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockAppointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	assert.NoError(t, err)
	return body
}

func TestCreateAppointment_Success(t *testing.T) {
	mock := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return &dto.AppointmentResponse{
				ID:     uuid.New().String(),
				Date:   req.Date,
				Time:   req.Time,
				Status: "scheduled",
			}, nil
		},
	}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	payload, _ := json.Marshal(dto.CreateAppointmentRequest{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      "2026-10-01",
		Time:      "10:00",
		Type:      "in-person",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
}

func TestCreateAppointment_SlotConflict(t *testing.T) {
	mock := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrSlotTaken
		},
	}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	payload, _ := json.Marshal(dto.CreateAppointmentRequest{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      "2026-10-01",
		Time:      "10:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeResponse(t, rec)
	assert.False(t, body.Success)
}

func TestCreateAppointment_MissingFields(t *testing.T) {
	h := NewAppointmentHandler(&mockAppointmentUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAppointment_InvalidTransition(t *testing.T) {
	mock := &mockAppointmentUsecase{
		updateFn: func(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrInvalidStatusTransition
		},
	}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	payload := []byte(`{"status": "scheduled"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/"+uuid.New().String(), bytes.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.New().String()})
	rec := httptest.NewRecorder()

	h.UpdateAppointment(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateAppointment_PatientOnlyCancel(t *testing.T) {
	mock := &mockAppointmentUsecase{
		updateFn: func(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrPatientOnlyCancel
		},
	}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	payload := []byte(`{"status": "completed"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/"+uuid.New().String(), bytes.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.New().String()})
	rec := httptest.NewRecorder()

	h.UpdateAppointment(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetAppointment_InvalidID(t *testing.T) {
	h := NewAppointmentHandler(&mockAppointmentUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()

	h.GetAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAppointment_NotFound(t *testing.T) {
	mock := &mockAppointmentUsecase{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return usecase.ErrAppointmentNotFound
		},
	}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()

	h.DeleteAppointment(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
