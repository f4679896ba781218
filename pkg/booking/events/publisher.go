package events

import (
	"context"
	"time"

	"gymkaana-be/internal/pkg/logger"
	pkgEvents "gymkaana-be/pkg/events"
	pktNats "gymkaana-be/pkg/nats"

	"github.com/google/uuid"
)

const (
	BookingCreated   = "BOOKING_CREATED"
	CheckInVerified  = "CHECKIN_VERIFIED"
	CheckInRejected  = "CHECKIN_REJECTED"
	BookingCancelled = "BOOKING_CANCELLED"
	GymRegistered    = "GYM_REGISTERED"
)

// Snapshot is the part of a booking carried on the bus.
type Snapshot struct {
	BookingId    uuid.UUID
	UserId       uuid.UUID
	GymId        uuid.UUID
	GymOwnerId   uuid.UUID
	MemberName   string
	Amount       float64
	Status       string
	RefundStatus string
}

// Publisher abstracts event publishing for booking operations. Failures are
// logged, never returned.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, b Snapshot)
	PublishCheckInVerified(ctx context.Context, b Snapshot)
	PublishCheckInRejected(ctx context.Context, b Snapshot, reason string)
	PublishBookingCancelled(ctx context.Context, b Snapshot, reason string)
	PublishGymRegistered(ctx context.Context, gymId, ownerId uuid.UUID, name string)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher accepts a nil publisher, in which case every call is a no-op.
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) PublishBookingCreated(ctx context.Context, b Snapshot) {
	p.publishBooking(ctx, BookingCreated, b, "")
}

func (p *NatsPublisher) PublishCheckInVerified(ctx context.Context, b Snapshot) {
	p.publishBooking(ctx, CheckInVerified, b, "")
}

func (p *NatsPublisher) PublishCheckInRejected(ctx context.Context, b Snapshot, reason string) {
	p.publishBooking(ctx, CheckInRejected, b, reason)
}

func (p *NatsPublisher) PublishBookingCancelled(ctx context.Context, b Snapshot, reason string) {
	p.publishBooking(ctx, BookingCancelled, b, reason)
}

func (p *NatsPublisher) PublishGymRegistered(ctx context.Context, gymId, ownerId uuid.UUID, name string) {
	now := time.Now()
	p.publish(ctx, pkgEvents.BaseEvent{
		Type: GymRegistered,
		Data: map[string]interface{}{
			"gym_id":       gymId.String(),
			"gym_owner_id": ownerId.String(),
			"user_id":      ownerId.String(),
			"name":         name,
			"entity_type":  "gym",
			"entity_id":    gymId.String(),
			"occurred_at":  now,
		},
		OccurredAt: now,
	})
}

func (p *NatsPublisher) publishBooking(ctx context.Context, eventType string, b Snapshot, reason string) {
	now := time.Now()
	data := map[string]interface{}{
		"booking_id":    b.BookingId.String(),
		"user_id":       b.UserId.String(),
		"gym_id":        b.GymId.String(),
		"gym_owner_id":  b.GymOwnerId.String(),
		"member_name":   b.MemberName,
		"amount":        b.Amount,
		"status":        b.Status,
		"refund_status": b.RefundStatus,
		"entity_type":   "booking",
		"entity_id":     b.BookingId.String(),
		"occurred_at":   now,
	}
	if reason != "" {
		data["reason"] = reason
	}

	p.publish(ctx, pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, evt pkgEvents.BaseEvent) {
	if p.publisher == nil {
		return
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("BOOKING", "Failed to publish "+evt.Type+" event", map[string]interface{}{
			"error":     err.Error(),
			"entity_id": evt.Data["entity_id"],
		})
	}
}
