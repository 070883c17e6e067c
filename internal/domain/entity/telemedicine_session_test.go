package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    SessionStatus
		to      SessionStatus
		allowed bool
	}{
		{"scheduled to in-progress", SessionStatusScheduled, SessionStatusInProgress, true},
		{"scheduled to cancelled", SessionStatusScheduled, SessionStatusCancelled, true},
		{"scheduled to completed", SessionStatusScheduled, SessionStatusCompleted, false},
		{"in-progress to completed", SessionStatusInProgress, SessionStatusCompleted, true},
		{"in-progress to cancelled", SessionStatusInProgress, SessionStatusCancelled, false},
		{"in-progress to scheduled", SessionStatusInProgress, SessionStatusScheduled, false},
		{"completed to in-progress", SessionStatusCompleted, SessionStatusInProgress, false},
		{"cancelled to in-progress", SessionStatusCancelled, SessionStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSessionHelpers(t *testing.T) {
	session := &TelemedicineSession{Status: SessionStatusScheduled}
	assert.True(t, session.IsScheduled())
	assert.False(t, session.IsInProgress())

	session.Status = SessionStatusInProgress
	assert.True(t, session.IsInProgress())
	assert.False(t, session.IsScheduled())
}
