package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Meeting is the descriptor returned by a video provider for one appointment.
type Meeting struct {
	ID        string
	Password  string
	JoinURL   string
	HostURL   string
	StartTime time.Time
	Duration  int
}

// VideoProvider provisions video meetings for telemedicine sessions. The
// shipped implementation fabricates credentials locally; a real Zoom/Meet
// integration would satisfy the same interface.
type VideoProvider interface {
	CreateMeeting(ctx context.Context, topic string, startTime time.Time, duration int) (*Meeting, error)
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

type mockVideoProvider struct {
	baseURL string
}

// NewMockVideoProvider returns a provider that generates zoom-style meeting
// descriptors without calling any external API.
func NewMockVideoProvider() VideoProvider {
	return &mockVideoProvider{baseURL: "https://zoom.us"}
}

func (p *mockVideoProvider) CreateMeeting(ctx context.Context, topic string, startTime time.Time, duration int) (*Meeting, error) {
	meetingID, err := randomMeetingID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate meeting id: %w", err)
	}

	password, err := randomPassword(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate meeting password: %w", err)
	}

	return &Meeting{
		ID:        meetingID,
		Password:  password,
		JoinURL:   fmt.Sprintf("%s/j/%s?pwd=%s", p.baseURL, meetingID, password),
		HostURL:   fmt.Sprintf("%s/s/%s?zak=mock-host-key&pwd=%s", p.baseURL, meetingID, password),
		StartTime: startTime,
		Duration:  duration,
	}, nil
}

// randomMeetingID produces a 9-digit numeric id, matching the format video
// conferencing vendors use.
func randomMeetingID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000000), nil
}

func randomPassword(length int) (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
