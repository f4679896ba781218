package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gymkaana-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func newClient(hub *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
}

func TestHub_SendReachesEveryDevice(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()

	phone := newClient(hub, userID, 4)
	laptop := newClient(hub, userID, 4)
	stranger := newClient(hub, uuid.New(), 4)
	for _, c := range []*Client{phone, laptop, stranger} {
		require.True(t, hub.join(c))
	}
	require.Eventually(t, func() bool { return hub.ConnectedUsers() == 2 }, time.Second, 5*time.Millisecond)

	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	hub.Send(userID, FeedMessage{Type: "activity", Event: "CHECKIN_VERIFIED", Data: map[string]interface{}{"booking_id": "b1"}, OccurredAt: at})

	for _, c := range []*Client{phone, laptop} {
		select {
		case raw := <-c.Send:
			var got FeedMessage
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, "CHECKIN_VERIFIED", got.Event)
			assert.Equal(t, "b1", got.Data["booking_id"])
			assert.True(t, at.Equal(got.OccurredAt))
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
	assert.Empty(t, stranger.Send)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()

	slow := newClient(hub, userID, 1)
	require.True(t, hub.join(slow))
	require.Eventually(t, func() bool { return hub.ConnectedUsers() == 1 }, time.Second, 5*time.Millisecond)

	hub.Send(userID, FeedMessage{Event: "first"})
	hub.Send(userID, FeedMessage{Event: "second"})

	assert.Equal(t, 0, hub.ConnectedUsers())
	<-slow.Send
	_, open := <-slow.Send
	assert.False(t, open, "send channel closed on drop")
}

func TestHub_LeaveAfterStop(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := newClient(hub, uuid.New(), 1)
	require.True(t, hub.join(client))
	cancel()
	<-stopped

	assert.False(t, hub.join(newClient(hub, uuid.New(), 1)))
	assert.NotPanics(t, func() { hub.leave(client) })
}
