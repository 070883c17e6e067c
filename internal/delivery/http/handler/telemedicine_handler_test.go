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
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/validator"
)

type mockTelemedicineUsecase struct {
	provisionFn func(ctx context.Context, req *dto.ProvisionSessionRequest) (*dto.TelemedicineSessionResponse, error)
	listFn      func(ctx context.Context) (*dto.TelemedicineSessionListResponse, error)
	getFn       func(ctx context.Context, id uuid.UUID) (*dto.TelemedicineSessionResponse, error)
	startFn     func(ctx context.Context, id uuid.UUID) (*dto.StartSessionResponse, error)
	endFn       func(ctx context.Context, id uuid.UUID, req *dto.EndSessionRequest) (*dto.TelemedicineSessionResponse, error)
}

func (m *mockTelemedicineUsecase) ProvisionSession(ctx context.Context, req *dto.ProvisionSessionRequest) (*dto.TelemedicineSessionResponse, error) {
	return m.provisionFn(ctx, req)
}

func (m *mockTelemedicineUsecase) ListSessions(ctx context.Context) (*dto.TelemedicineSessionListResponse, error) {
	return m.listFn(ctx)
}

func (m *mockTelemedicineUsecase) GetSession(ctx context.Context, id uuid.UUID) (*dto.TelemedicineSessionResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockTelemedicineUsecase) StartSession(ctx context.Context, id uuid.UUID) (*dto.StartSessionResponse, error) {
	return m.startFn(ctx, id)
}

func (m *mockTelemedicineUsecase) EndSession(ctx context.Context, id uuid.UUID, req *dto.EndSessionRequest) (*dto.TelemedicineSessionResponse, error) {
	return m.endFn(ctx, id, req)
}

func TestProvisionSession_NotVideoAppointment(t *testing.T) {
	mock := &mockTelemedicineUsecase{
		provisionFn: func(ctx context.Context, req *dto.ProvisionSessionRequest) (*dto.TelemedicineSessionResponse, error) {
			return nil, usecase.ErrNotVideoAppointment
		},
	}
	h := NewTelemedicineHandler(mock, validator.NewValidator())

	payload, _ := json.Marshal(dto.ProvisionSessionRequest{AppointmentID: uuid.New()})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/telemedicine/sessions", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.ProvisionSession(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProvisionSession_AlreadyExists(t *testing.T) {
	mock := &mockTelemedicineUsecase{
		provisionFn: func(ctx context.Context, req *dto.ProvisionSessionRequest) (*dto.TelemedicineSessionResponse, error) {
			return nil, usecase.ErrSessionExists
		},
	}
	h := NewTelemedicineHandler(mock, validator.NewValidator())

	payload, _ := json.Marshal(dto.ProvisionSessionRequest{AppointmentID: uuid.New()})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/telemedicine/sessions", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.ProvisionSession(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStartSession_Success(t *testing.T) {
	id := uuid.New()
	mock := &mockTelemedicineUsecase{
		startFn: func(ctx context.Context, sessionID uuid.UUID) (*dto.StartSessionResponse, error) {
			assert.Equal(t, id, sessionID)
			return &dto.StartSessionResponse{
				Session: &dto.TelemedicineSessionResponse{ID: sessionID.String(), Status: "in-progress"},
				HostURL: "https://zoom.us/s/123456789",
			}, nil
		},
	}
	h := NewTelemedicineHandler(mock, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/telemedicine/sessions/"+id.String()+"/start", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()

	h.StartSession(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
}

func TestStartSession_AlreadyStarted(t *testing.T) {
	mock := &mockTelemedicineUsecase{
		startFn: func(ctx context.Context, id uuid.UUID) (*dto.StartSessionResponse, error) {
			return nil, usecase.ErrSessionTransition
		},
	}
	h := NewTelemedicineHandler(mock, validator.NewValidator())

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/telemedicine/sessions/"+id+"/start", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()

	h.StartSession(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEndSession_Success(t *testing.T) {
	mock := &mockTelemedicineUsecase{
		endFn: func(ctx context.Context, id uuid.UUID, req *dto.EndSessionRequest) (*dto.TelemedicineSessionResponse, error) {
			return &dto.TelemedicineSessionResponse{ID: id.String(), Status: "completed", Notes: req.Notes}, nil
		},
	}
	h := NewTelemedicineHandler(mock, validator.NewValidator())

	id := uuid.New().String()
	payload := []byte(`{"notes": "patient doing well"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/telemedicine/sessions/"+id+"/end", bytes.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()

	h.EndSession(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEndSession_NotInProgress(t *testing.T) {
	mock := &mockTelemedicineUsecase{
		endFn: func(ctx context.Context, id uuid.UUID, req *dto.EndSessionRequest) (*dto.TelemedicineSessionResponse, error) {
			return nil, usecase.ErrSessionTransition
		},
	}
	h := NewTelemedicineHandler(mock, validator.NewValidator())

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/telemedicine/sessions/"+id+"/end", bytes.NewReader([]byte(`{}`)))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()

	h.EndSession(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
