package booking_test

import (
	"context"
	"sync"
	"time"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/repository/fake"

	"github.com/google/uuid"
)

var (
	ownerId  = uuid.MustParse("0190f3a8-1111-7000-8000-000000000001")
	otherId  = uuid.MustParse("0190f3a8-1111-7000-8000-000000000002")
	memberId = uuid.MustParse("0190f3a8-1111-7000-8000-000000000003")
	adminId  = uuid.MustParse("0190f3a8-1111-7000-8000-000000000004")

	gymId      = uuid.MustParse("0190f3a8-2222-7000-8000-000000000001")
	dayPassId  = uuid.MustParse("0190f3a8-3333-7000-8000-000000000001")
	monthlyId  = uuid.MustParse("0190f3a8-3333-7000-8000-000000000002")
	bookingNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
)

func seededStore() *fake.Store {
	store := fake.NewStore()
	store.PutGym(entity.Gym{Id: gymId, OwnerId: ownerId, Name: "PowerHouse", Status: entity.GymStatusActive})
	store.PutPlan(entity.Plan{Id: dayPassId, GymId: gymId, Name: "Day Pass", Duration: "1 Day", Price: 199, Enabled: true})
	store.PutPlan(entity.Plan{Id: monthlyId, GymId: gymId, Name: "Monthly", Duration: "1 Month", Price: 2499, Enabled: true})
	return store
}

func newBooking(id uuid.UUID, status entity.BookingStatus, createdAt time.Time) entity.Booking {
	return entity.Booking{
		Id:          id,
		GymId:       gymId,
		PlanId:      dayPassId,
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
}

func caller(id uuid.UUID, roles ...entity.Role) entity.Caller {
	return entity.Caller{UserId: id, Roles: roles}
}

func background() context.Context {
	return context.Background()
}

type logEntry struct {
	Level   string
	Module  string
	Message string
	Details map[string]interface{}
}

// recordingLogger keeps every entry for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{Level: level, Module: module, Message: message, Details: details})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.add("debug", module, message, details)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.add("info", module, message, details)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.add("warn", module, message, details)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.add("error", module, message, details)
}

func (l *recordingLogger) Sync() error { return nil }

func (l *recordingLogger) warnings() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.Level == "warn" {
			out = append(out, e)
		}
	}
	return out
}
