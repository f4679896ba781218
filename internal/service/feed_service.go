package service

import (
	"context"

	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/websocket"
	"gymkaana-be/pkg/events"
	pktNats "gymkaana-be/pkg/nats"

	"github.com/google/uuid"
)

const feedDurableName = "booking-feed-worker"

// FeedDelivery pushes a message to every open connection of a user.
// Implemented by the websocket hub.
type FeedDelivery interface {
	Send(userID uuid.UUID, msg websocket.FeedMessage)
}

// FeedService forwards domain events from the bus to the member and the gym
// owner they concern.
type FeedService struct {
	subscriber *pktNats.Subscriber
	delivery   FeedDelivery
	logger     logger.ILogger
}

func NewFeedService(sub *pktNats.Subscriber, delivery FeedDelivery, log logger.ILogger) *FeedService {
	return &FeedService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus. Without a subscriber the feed
// stays silent.
func (s *FeedService) Start(ctx context.Context) {
	if s.subscriber == nil {
		s.logger.Warn("FeedService", "No event subscriber, live feed disabled", nil)
		return
	}

	err := s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", feedDurableName, s.HandleEvent)
	if err != nil {
		s.logger.Error("FeedService", "Failed to start feed subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("FeedService", "Feed service started", map[string]interface{}{"subject": pktNats.SubjectPrefix + ">"})
}

// HandleEvent delivers event to its recipients. It never asks for redelivery:
// a user who is offline simply misses the live update.
func (s *FeedService) HandleEvent(ctx context.Context, event events.Event) error {
	msg := websocket.FeedMessage{
		Type:       "activity",
		Event:      event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	}

	for _, userID := range recipients(event) {
		s.delivery.Send(userID, msg)
	}
	return nil
}

func recipients(event events.Event) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, 2)
	var out []uuid.UUID
	for _, key := range []string{"user_id", "gym_owner_id"} {
		id, err := uuid.Parse(events.String(event, key))
		if err != nil || id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
