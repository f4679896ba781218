package service_test

import (
	"context"
	"sync"
	"testing"

	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/service"
	"gymkaana-be/internal/websocket"
	bookingEvents "gymkaana-be/pkg/booking/events"
	"gymkaana-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDelivery struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]websocket.FeedMessage
}

func (d *recordingDelivery) Send(userID uuid.UUID, msg websocket.FeedMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sent == nil {
		d.sent = make(map[uuid.UUID][]websocket.FeedMessage)
	}
	d.sent[userID] = append(d.sent[userID], msg)
}

func TestFeedService_HandleEvent(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want []uuid.UUID
	}{
		{
			name: "member and owner",
			data: map[string]interface{}{"user_id": memberId.String(), "gym_owner_id": ownerId.String()},
			want: []uuid.UUID{memberId, ownerId},
		},
		{
			name: "owner booking at own gym is delivered once",
			data: map[string]interface{}{"user_id": ownerId.String(), "gym_owner_id": ownerId.String()},
			want: []uuid.UUID{ownerId},
		},
		{
			name: "malformed ids are skipped",
			data: map[string]interface{}{"user_id": "nobody", "gym_owner_id": uuid.Nil.String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delivery := &recordingDelivery{}
			feed := service.NewFeedService(nil, delivery, logger.NewNopLogger())

			err := feed.HandleEvent(context.Background(), events.BaseEvent{
				Type:       bookingEvents.CheckInVerified,
				Data:       tt.data,
				OccurredAt: baseTime,
			})
			require.NoError(t, err)

			assert.Len(t, delivery.sent, len(tt.want))
			for _, id := range tt.want {
				require.Len(t, delivery.sent[id], 1)
				msg := delivery.sent[id][0]
				assert.Equal(t, "activity", msg.Type)
				assert.Equal(t, bookingEvents.CheckInVerified, msg.Event)
				assert.Equal(t, baseTime, msg.OccurredAt)
			}
		})
	}
}

func TestFeedService_StartWithoutSubscriber(t *testing.T) {
	feed := service.NewFeedService(nil, &recordingDelivery{}, logger.NewNopLogger())
	assert.NotPanics(t, func() { feed.Start(context.Background()) })
}
