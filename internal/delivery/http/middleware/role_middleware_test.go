package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/policy"
)

func requestWithRole(role entity.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithCaller(req.Context(), policy.Caller{UserID: uuid.New(), Role: role})
	return req.WithContext(ctx)
}

func TestRequireAdmin(t *testing.T) {
	called := false
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole(entity.RoleAdmin))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	called = false
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole(entity.RolePatient))
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireDoctorOrAdmin(t *testing.T) {
	handler := RequireDoctorOrAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for role, want := range map[entity.Role]int{
		entity.RoleDoctor:  http.StatusOK,
		entity.RoleAdmin:   http.StatusOK,
		entity.RolePatient: http.StatusForbidden,
	} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(role))
		assert.Equal(t, want, rec.Code, "role %s", role)
	}
}

func TestRequireRole_MissingRole(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
