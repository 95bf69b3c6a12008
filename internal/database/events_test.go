package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogEventAndGetEventsSince(t *testing.T) {
	user := createTestUser(t, "events_user")
	other := createTestUser(t, "events_other_user")

	err := testStore.LogEvent(context.Background(), user.ID, "user_logged_in", map[string]string{"client_ip": "1.1.1.1"})
	require.NoError(t, err)
	err = testStore.LogEvent(context.Background(), user.ID, "password_changed", nil)
	require.NoError(t, err)
	err = testStore.LogEvent(context.Background(), other.ID, "user_logged_in", nil)
	require.NoError(t, err)

	events, err := testStore.GetEventsSince(context.Background(), user.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "user_logged_in", events[0].EventType)
	require.Equal(t, "password_changed", events[1].EventType)
	require.Greater(t, events[1].ID, events[0].ID)

	newer, err := testStore.GetEventsSince(context.Background(), user.ID, events[0].ID)
	require.NoError(t, err)
	require.Len(t, newer, 1)
	require.Equal(t, "password_changed", newer[0].EventType)

	none, err := testStore.GetEventsSince(context.Background(), user.ID, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Len(t, none, 0)
}
