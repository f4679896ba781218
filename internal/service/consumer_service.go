package service

import (
	"context"
	"encoding/json"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/pkg/mailer"
	"gymkaana-be/internal/pkg/qrcode"
	"gymkaana-be/internal/repository/unitofwork"
	bookingEvents "gymkaana-be/pkg/booking/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// Subscriber is the subscribing half of the in-process queue.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

type consumerService struct {
	subscriber   Subscriber
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	events       bookingEvents.Publisher
	emailService mailer.IEmailService
	qrRenderer   qrcode.Renderer
	logger       logger.ILogger
}

func NewConsumerService(
	subscriber Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	events bookingEvents.Publisher,
	emailService mailer.IEmailService,
	qrRenderer qrcode.Renderer,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		uowFactory:   uowFactory,
		events:       events,
		emailService: emailService,
		qrRenderer:   qrRenderer,
		logger:       logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage runs every step independently. Failures are logged and the
// message is always acked: side effects are best effort.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.SideEffectMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("WORKER", "Failed to unmarshal side effect", map[string]interface{}{"error": err.Error()})
		return
	}

	cs.recordActivity(ctx, payload)
	cs.publishEvent(ctx, payload)

	if payload.Event == bookingEvents.BookingCreated && payload.Booking != nil {
		cs.sendPass(payload)
	}
}

func (cs *consumerService) recordActivity(ctx context.Context, payload dto.SideEffectMessage) {
	activity := &entity.Activity{
		Id:          uuid.Must(uuid.NewV7()),
		UserId:      payload.UserId,
		GymId:       payload.GymId,
		Action:      payload.Action,
		Description: payload.Description,
		Type:        entity.ActivityType(payload.Type),
		Metadata:    map[string]interface{}{"event": payload.Event},
		CreatedAt:   payload.OccurredAt,
	}
	if payload.Booking != nil {
		bookingId := payload.Booking.Id
		activity.BookingId = &bookingId
		activity.Metadata["status"] = payload.Booking.Status
	}
	if payload.Reason != "" {
		activity.Metadata["reason"] = payload.Reason
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ActivityRepository().Create(ctx, activity); err != nil {
		cs.logger.Error("WORKER", "Activity log failed", map[string]interface{}{
			"action": payload.Action,
			"error":  err.Error(),
		})
	}
}

func (cs *consumerService) publishEvent(ctx context.Context, payload dto.SideEffectMessage) {
	if cs.events == nil {
		return
	}

	if payload.Event == bookingEvents.GymRegistered {
		cs.events.PublishGymRegistered(ctx, payload.GymId, payload.GymOwnerId, payload.GymName)
		return
	}
	if payload.Booking == nil {
		return
	}

	snap := bookingEvents.Snapshot{
		BookingId:    payload.Booking.Id,
		UserId:       payload.Booking.UserId,
		GymId:        payload.Booking.GymId,
		GymOwnerId:   payload.GymOwnerId,
		MemberName:   payload.Booking.MemberName,
		Amount:       payload.Booking.Amount,
		Status:       payload.Booking.Status,
		RefundStatus: payload.Booking.RefundDetails.Status,
	}

	switch payload.Event {
	case bookingEvents.BookingCreated:
		cs.events.PublishBookingCreated(ctx, snap)
	case bookingEvents.CheckInVerified:
		cs.events.PublishCheckInVerified(ctx, snap)
	case bookingEvents.CheckInRejected:
		cs.events.PublishCheckInRejected(ctx, snap, payload.Reason)
	case bookingEvents.BookingCancelled:
		cs.events.PublishBookingCancelled(ctx, snap, payload.Reason)
	default:
		cs.logger.Warn("WORKER", "Unknown side effect event", map[string]interface{}{"event": payload.Event})
	}
}

func (cs *consumerService) sendPass(payload dto.SideEffectMessage) {
	b := payload.Booking

	pass := mailer.BookingPass{
		ToEmail:        b.MemberEmail,
		MemberName:     b.MemberName,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		ShortReference: b.ShortReference,
	}
	if b.Gym != nil {
		pass.GymName = b.Gym.Name
	}
	if b.Plan != nil {
		pass.PlanName = b.Plan.Name
	}

	png, err := cs.qrRenderer.PNG(b.Id.String())
	if err != nil {
		cs.logger.Error("WORKER", "Failed to render booking QR", map[string]interface{}{
			"booking_id": b.Id,
			"error":      err.Error(),
		})
	} else {
		pass.QRCodePNG = png
	}

	if err := cs.emailService.SendBookingPass(pass); err != nil {
		cs.logger.Error("WORKER", "Failed to send QR email", map[string]interface{}{
			"booking_id": b.Id,
			"to":         b.MemberEmail,
			"error":      err.Error(),
		})
	}
}
