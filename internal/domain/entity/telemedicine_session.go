package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the lifecycle state of a telemedicine session
type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in-progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

// sessionTransitions: scheduled -> in-progress -> completed, with cancelled
// reachable only from scheduled.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusScheduled:  {SessionStatusInProgress, SessionStatusCancelled},
	SessionStatusInProgress: {SessionStatusCompleted},
}

// CanTransitionTo reports whether a status change is permitted.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TelemedicineSession is the bookkeeping row around an external video meeting,
// one-to-one with a video-type appointment. Meeting credentials come from the
// configured video provider.
type TelemedicineSession struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	MeetingID       string        `gorm:"type:varchar(50)" json:"meeting_id,omitempty"`
	MeetingPassword string        `gorm:"type:varchar(50)" json:"meeting_password,omitempty"`
	JoinURL         string        `gorm:"type:varchar(512)" json:"join_url,omitempty"`
	HostURL         string        `gorm:"type:varchar(512)" json:"host_url,omitempty"`
	StartTime       *time.Time    `json:"start_time,omitempty"`
	EndTime         *time.Time    `json:"end_time,omitempty"`
	Duration        int           `json:"duration,omitempty"`
	Status          SessionStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	RecordingURL    string        `gorm:"type:varchar(512)" json:"recording_url,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (TelemedicineSession) TableName() string {
	return "telemedicine_sessions"
}

// IsScheduled checks if the session has not started yet
func (s *TelemedicineSession) IsScheduled() bool {
	return s.Status == SessionStatusScheduled
}

// IsInProgress checks if the session is currently running
func (s *TelemedicineSession) IsInProgress() bool {
	return s.Status == SessionStatusInProgress
}
