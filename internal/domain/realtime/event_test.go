package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_EventRoundTrip(t *testing.T) {
	raw, err := FormatEvent(OpUserStatus, UserStatusEvent{UserID: "u1", IsOnline: true})
	require.NoError(t, err)

	event, err := ParseEvent(raw)
	require.NoError(t, err)
	require.Equal(t, OpUserStatus, event.Op)

	var data UserStatusEvent
	require.NoError(t, json.Unmarshal(event.Data, &data))
	require.Equal(t, "u1", data.UserID)
	require.True(t, data.IsOnline)
}

func Test_ParseEvent_invalid(t *testing.T) {
	_, err := ParseEvent([]byte("not json"))
	require.Error(t, err)
}
