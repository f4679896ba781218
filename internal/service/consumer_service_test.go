package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/pkg/mailer"
	"gymkaana-be/internal/repository/fake"
	"gymkaana-be/internal/service"
	bookingEvents "gymkaana-be/pkg/booking/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sideEffectTopic = "booking_side_effects"

type recordingMailer struct {
	mu     sync.Mutex
	passes []mailer.BookingPass
	err    error
}

func (m *recordingMailer) SendBookingPass(pass mailer.BookingPass) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passes = append(m.passes, pass)
	return m.err
}

func (m *recordingMailer) Passes() []mailer.BookingPass {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.BookingPass(nil), m.passes...)
}

type stubRenderer struct {
	err error
}

func (r stubRenderer) PNG(content string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png:" + content), nil
}

type recordingEvents struct {
	mu    sync.Mutex
	types []string
}

func (e *recordingEvents) add(t string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types = append(e.types, t)
}

func (e *recordingEvents) Types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.types...)
}

func (e *recordingEvents) PublishBookingCreated(ctx context.Context, b bookingEvents.Snapshot) {
	e.add(bookingEvents.BookingCreated)
}

func (e *recordingEvents) PublishCheckInVerified(ctx context.Context, b bookingEvents.Snapshot) {
	e.add(bookingEvents.CheckInVerified)
}

func (e *recordingEvents) PublishCheckInRejected(ctx context.Context, b bookingEvents.Snapshot, reason string) {
	e.add(bookingEvents.CheckInRejected)
}

func (e *recordingEvents) PublishBookingCancelled(ctx context.Context, b bookingEvents.Snapshot, reason string) {
	e.add(bookingEvents.BookingCancelled)
}

func (e *recordingEvents) PublishGymRegistered(ctx context.Context, gymId, ownerId uuid.UUID, name string) {
	e.add(bookingEvents.GymRegistered)
}

type worker struct {
	store      *fake.Store
	mailer     *recordingMailer
	events     *recordingEvents
	dispatcher service.ISideEffectDispatcher
}

func startWorker(t *testing.T, renderer stubRenderer, mailErr error) *worker {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 16,
		Persistent:          true,
	}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	w := &worker{
		store:  fake.NewStore(),
		mailer: &recordingMailer{err: mailErr},
		events: &recordingEvents{},
	}
	log := logger.NewNopLogger()
	w.dispatcher = service.NewSideEffectDispatcher(service.NewPublisherService(sideEffectTopic, pubSub), log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := service.NewConsumerService(pubSub, sideEffectTopic, w.store, w.events, w.mailer, renderer, log)
	require.NoError(t, consumer.Consume(ctx))
	return w
}

func createdMessage() dto.SideEffectMessage {
	bookingId := uuid.New()
	return dto.SideEffectMessage{
		Event:       bookingEvents.BookingCreated,
		UserId:      memberId,
		GymId:       gymId,
		GymOwnerId:  ownerId,
		Action:      service.ActionBookingCreated,
		Description: "Booking created",
		Type:        string(entity.ActivityTypeSuccess),
		Booking: &dto.BookingResponse{
			Id:             bookingId,
			ShortReference: "ABCDEFGH",
			GymId:          gymId,
			UserId:         memberId,
			MemberName:     "Sarah",
			MemberEmail:    "sarah@example.com",
			Amount:         199,
			StartDate:      baseTime,
			EndDate:        baseTime.Add(24 * time.Hour),
			Status:         string(entity.BookingStatusUpcoming),
			RefundDetails:  dto.BookingRefundResponse{Status: string(entity.BookingRefundNone)},
			Gym:            &dto.GymResponse{Name: "PowerHouse"},
			Plan:           &dto.PlanResponse{Name: "Day Pass"},
		},
		OccurredAt: baseTime,
	}
}

func TestConsumer_BookingCreated(t *testing.T) {
	w := startWorker(t, stubRenderer{}, nil)
	msg := createdMessage()

	w.dispatcher.Dispatch(context.Background(), msg)

	require.Eventually(t, func() bool {
		return len(w.mailer.Passes()) == 1 && len(w.store.Activities()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	pass := w.mailer.Passes()[0]
	assert.Equal(t, "sarah@example.com", pass.ToEmail)
	assert.Equal(t, "PowerHouse", pass.GymName)
	assert.Equal(t, "Day Pass", pass.PlanName)
	assert.Equal(t, "ABCDEFGH", pass.ShortReference)
	assert.Equal(t, []byte("png:"+msg.Booking.Id.String()), pass.QRCodePNG)

	activity := w.store.Activities()[0]
	assert.Equal(t, service.ActionBookingCreated, activity.Action)
	require.NotNil(t, activity.BookingId)
	assert.Equal(t, msg.Booking.Id, *activity.BookingId)
	assert.Equal(t, entity.ActivityTypeSuccess, activity.Type)

	assert.Equal(t, []string{bookingEvents.BookingCreated}, w.events.Types())
}

func TestConsumer_StepsFailIndependently(t *testing.T) {
	w := startWorker(t, stubRenderer{err: errors.New("encoder down")}, errors.New("smtp down"))

	w.dispatcher.Dispatch(context.Background(), createdMessage())

	require.Eventually(t, func() bool {
		return len(w.mailer.Passes()) == 1 && len(w.store.Activities()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Nil(t, w.mailer.Passes()[0].QRCodePNG, "email goes out without the image")
	assert.Equal(t, []string{bookingEvents.BookingCreated}, w.events.Types())
}

func TestConsumer_NonCreationEventsSendNoEmail(t *testing.T) {
	w := startWorker(t, stubRenderer{}, nil)

	cancelled := createdMessage()
	cancelled.Event = bookingEvents.BookingCancelled
	cancelled.Action = service.ActionBookingCancelled
	cancelled.Reason = "Change of plans"
	w.dispatcher.Dispatch(context.Background(), cancelled)

	w.dispatcher.Dispatch(context.Background(), dto.SideEffectMessage{
		Event:       bookingEvents.GymRegistered,
		UserId:      ownerId,
		GymId:       gymId,
		GymOwnerId:  ownerId,
		GymName:     "PowerHouse",
		Action:      service.ActionGymRegistered,
		Description: `New hub "PowerHouse" awaiting clearance.`,
		Type:        string(entity.ActivityTypeWarning),
		OccurredAt:  baseTime,
	})

	require.Eventually(t, func() bool {
		return len(w.store.Activities()) == 2 && len(w.events.Types()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.Empty(t, w.mailer.Passes())
	assert.ElementsMatch(t, []string{bookingEvents.BookingCancelled, bookingEvents.GymRegistered}, w.events.Types())

	for _, a := range w.store.Activities() {
		if a.Action == service.ActionBookingCancelled {
			assert.Equal(t, "Change of plans", a.Metadata["reason"])
		}
	}
}
