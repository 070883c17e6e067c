package policy

import (
	"testing"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAllows_AdminAlwaysPasses(t *testing.T) {
	admin := Caller{UserID: uuid.New(), Role: entity.RoleAdmin}

	owner := uuid.New()
	professional := uuid.New()

	assert.True(t, Allows(admin, &owner, &professional))
	assert.True(t, Allows(admin, nil, nil))
}

func TestAllows_OwningPatient(t *testing.T) {
	userID := uuid.New()
	caller := Caller{UserID: userID, Role: entity.RolePatient}

	other := uuid.New()

	assert.True(t, Allows(caller, &userID, nil))
	assert.False(t, Allows(caller, &other, nil))
}

func TestAllows_AssignedProfessional(t *testing.T) {
	userID := uuid.New()
	caller := Caller{UserID: userID, Role: entity.RoleDoctor}

	owner := uuid.New()
	other := uuid.New()

	assert.True(t, Allows(caller, &owner, &userID))
	assert.False(t, Allows(caller, &owner, &other))
}

func TestAllows_NoMatchDenied(t *testing.T) {
	caller := Caller{UserID: uuid.New(), Role: entity.RolePatient}

	assert.False(t, Allows(caller, nil, nil))
}
