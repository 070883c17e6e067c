package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

type TelemedicineHandler struct {
	telemedicineUsecase usecase.TelemedicineUsecase
	validator           *validator.CustomValidator
}

func NewTelemedicineHandler(telemedicineUsecase usecase.TelemedicineUsecase, validator *validator.CustomValidator) *TelemedicineHandler {
	return &TelemedicineHandler{
		telemedicineUsecase: telemedicineUsecase,
		validator:           validator,
	}
}

func (h *TelemedicineHandler) ProvisionSession(w http.ResponseWriter, r *http.Request) {
	var req dto.ProvisionSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.telemedicineUsecase.ProvisionSession(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Access denied")
		case usecase.ErrNotVideoAppointment:
			response.BadRequest(w, "Appointment is not a video appointment")
		case usecase.ErrVideoNotAvailable:
			response.BadRequest(w, "Doctor is not available for video consultations")
		case usecase.ErrSessionExists:
			response.Conflict(w, "Appointment already has a telemedicine session")
		default:
			response.InternalServerError(w, "Failed to provision session")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Session provisioned successfully", session)
}

func (h *TelemedicineHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.telemedicineUsecase.ListSessions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list sessions")
		return
	}

	response.Success(w, http.StatusOK, "Sessions retrieved successfully", sessions)
}

func (h *TelemedicineHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	session, err := h.telemedicineUsecase.GetSession(r.Context(), sessionID)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Access denied")
		default:
			response.InternalServerError(w, "Failed to get session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", session)
}

func (h *TelemedicineHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	result, err := h.telemedicineUsecase.StartSession(r.Context(), sessionID)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Access denied")
		case usecase.ErrSessionTransition:
			response.Conflict(w, "Session status transition not allowed")
		default:
			response.InternalServerError(w, "Failed to start session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session started successfully", result)
}

func (h *TelemedicineHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.EndSessionRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.telemedicineUsecase.EndSession(r.Context(), sessionID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionNotFound:
			response.NotFound(w, "Session not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Access denied")
		case usecase.ErrSessionTransition:
			response.Conflict(w, "Session status transition not allowed")
		default:
			response.InternalServerError(w, "Failed to end session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session ended successfully", session)
}
