package service_test

import (
	"context"
	"sync"
	"time"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/repository/fake"
	"gymkaana-be/internal/repository/memory"
	"gymkaana-be/internal/service"
	"gymkaana-be/pkg/booking"

	"github.com/google/uuid"
)

var (
	ownerId  = uuid.MustParse("0190f3a8-1111-7000-8000-000000000001")
	otherId  = uuid.MustParse("0190f3a8-1111-7000-8000-000000000002")
	memberId = uuid.MustParse("0190f3a8-1111-7000-8000-000000000003")
	adminId  = uuid.MustParse("0190f3a8-1111-7000-8000-000000000004")

	gymId      = uuid.MustParse("0190f3a8-2222-7000-8000-000000000001")
	otherGymId = uuid.MustParse("0190f3a8-2222-7000-8000-000000000002")
	dayPassId  = uuid.MustParse("0190f3a8-3333-7000-8000-000000000001")
	monthlyId  = uuid.MustParse("0190f3a8-3333-7000-8000-000000000002")
	otherPlan  = uuid.MustParse("0190f3a8-3333-7000-8000-000000000003")

	baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
)

var (
	owner  = entity.Caller{UserId: ownerId, Roles: []entity.Role{entity.RoleOwner}}
	other  = entity.Caller{UserId: otherId, Roles: []entity.Role{entity.RoleOwner}}
	member = entity.Caller{UserId: memberId, Roles: []entity.Role{entity.RoleUser}}
	admin  = entity.Caller{UserId: adminId, Roles: []entity.Role{entity.RoleAdmin}}
)

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// recordingDispatcher keeps every dispatched side effect.
type recordingDispatcher struct {
	mu       sync.Mutex
	messages []dto.SideEffectMessage
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, msg dto.SideEffectMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
}

func (d *recordingDispatcher) Messages() []dto.SideEffectMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]dto.SideEffectMessage(nil), d.messages...)
}

type fixture struct {
	store      *fake.Store
	clock      *clock
	dispatcher *recordingDispatcher
	gate       *booking.Gate
	bookings   service.IBookingService
}

func newFixture(cfg service.BookingServiceConfig) *fixture {
	store := fake.NewStore()
	store.PutGym(entity.Gym{Id: gymId, OwnerId: ownerId, Name: "PowerHouse", Status: entity.GymStatusActive, CreatedAt: baseTime})
	store.PutGym(entity.Gym{Id: otherGymId, OwnerId: otherId, Name: "Elite", Status: entity.GymStatusActive, CreatedAt: baseTime})
	store.PutPlan(entity.Plan{Id: dayPassId, GymId: gymId, Name: "Day Pass", Duration: "1 Day", Price: 199, Enabled: true})
	store.PutPlan(entity.Plan{Id: monthlyId, GymId: gymId, Name: "Monthly", Duration: "1 Month", Price: 2499, Enabled: true})
	store.PutPlan(entity.Plan{Id: otherPlan, GymId: otherGymId, Name: "Day Pass", Duration: "1 Day", Price: 299, Enabled: true})

	c := &clock{now: baseTime}
	d := &recordingDispatcher{}
	log := logger.NewNopLogger()
	gate := booking.NewGate(log, memory.NewGymOwnerCache(time.Minute))

	return &fixture{
		store:      store,
		clock:      c,
		dispatcher: d,
		gate:       gate,
		bookings: service.NewBookingService(
			store,
			booking.NewResolver(cfg.ShortReferenceLength),
			gate,
			booking.NewLifecycle(booking.DefaultCancellationGrace),
			d,
			log,
			cfg,
			c.Now,
		),
	}
}

func (f *fixture) putBooking(id uuid.UUID, planId uuid.UUID, status entity.BookingStatus, createdAt time.Time) entity.Booking {
	b := entity.Booking{
		Id:          id,
		GymId:       gymId,
		PlanId:      planId,
		UserId:      memberId,
		MemberName:  "Sarah",
		MemberEmail: "sarah@example.com",
		Amount:      199,
		StartDate:   createdAt,
		EndDate:     createdAt.Add(24 * time.Hour),
		Status:      status,
		Refund:      entity.RefundDetails{Status: entity.BookingRefundNone},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if planId == otherPlan {
		b.GymId = otherGymId
	}
	f.store.PutBooking(b)
	return b
}

func validCreateRequest() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		GymId:       gymId.String(),
		PlanId:      dayPassId.String(),
		UserId:      memberId.String(),
		MemberName:  "Sarah",
		MemberEmail: "sarah@example.com",
		Amount:      199,
		StartDate:   "2025-03-11",
		EndDate:     "2025-03-11T23:59:59Z",
	}
}
