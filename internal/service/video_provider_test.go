package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockVideoProvider_CreateMeeting(t *testing.T) {
	provider := NewMockVideoProvider()
	start := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	meeting, err := provider.CreateMeeting(context.Background(), "Cardiology consult", start, 30)
	require.NoError(t, err)
	require.NotNil(t, meeting)

	id, err := strconv.ParseInt(meeting.ID, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, int64(100000000))
	assert.Less(t, id, int64(1000000000))

	assert.Len(t, meeting.Password, 8)
	assert.True(t, strings.HasPrefix(meeting.JoinURL, "https://zoom.us/j/"+meeting.ID))
	assert.Contains(t, meeting.JoinURL, "pwd="+meeting.Password)
	assert.True(t, strings.HasPrefix(meeting.HostURL, "https://zoom.us/s/"+meeting.ID))
	assert.Equal(t, start, meeting.StartTime)
	assert.Equal(t, 30, meeting.Duration)
}

func TestMockVideoProvider_UniqueCredentials(t *testing.T) {
	provider := NewMockVideoProvider()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		meeting, err := provider.CreateMeeting(context.Background(), "consult", time.Now(), 30)
		require.NoError(t, err)
		key := meeting.ID + meeting.Password
		assert.False(t, seen[key], "meeting credentials repeated")
		seen[key] = true
	}
}
