package bootstrap

import (
	"context"
	"testing"
	"time"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/service"
	bookingEvents "gymkaana-be/pkg/booking/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "BOOKING_SIDE_EFFECTS"

func TestSideEffectQueue_ReleasesConsumedMessages(t *testing.T) {
	queue := newSideEffectQueue(watermill.NopLogger{})
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker, err := queue.Subscribe(ctx, testTopic)
	require.NoError(t, err)

	dispatcher := service.NewSideEffectDispatcher(
		service.NewPublisherService(testTopic, queue),
		logger.NewNopLogger(),
	)

	const total = 50
	for i := 0; i < total; i++ {
		dispatcher.Dispatch(ctx, dto.SideEffectMessage{
			Event:  bookingEvents.BookingCreated,
			UserId: uuid.New(),
			GymId:  uuid.New(),
			Action: "Booking created",
		})
	}

	for i := 0; i < total; i++ {
		select {
		case msg := <-worker:
			msg.Ack()
		case <-time.After(2 * time.Second):
			t.Fatalf("worker received %d of %d messages", i, total)
		}
	}

	late, err := queue.Subscribe(ctx, testTopic)
	require.NoError(t, err)

	select {
	case msg := <-late:
		msg.Ack()
		assert.Fail(t, "late subscriber replayed a consumed message", msg.UUID)
	case <-time.After(100 * time.Millisecond):
	}
}
