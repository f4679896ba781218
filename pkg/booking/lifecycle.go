package booking

import (
	"fmt"
	"time"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
)

// DefaultCancellationGrace is how long after creation a member may still
// cancel a booking that is no longer upcoming.
const DefaultCancellationGrace = time.Hour

const (
	ReasonBeforeCheckIn     = "Before check-in"
	ReasonWithinGrace       = "Within 1 hour of booking"
	ReasonRejectedByDefault = "Rejected during verification"

	MsgCancellationPolicy = "Cancellation policy: Must be before check-in or within 1 hour of booking. Otherwise, please contact support."
	MsgDateChangeDisabled = "Date modification is no longer allowed. Please cancel and re-book if needed."
)

// Lifecycle applies booking state transitions in memory. Callers persist the
// result with a conditional write against the status read before the change.
type Lifecycle struct {
	grace time.Duration
}

func NewLifecycle(grace time.Duration) *Lifecycle {
	if grace <= 0 {
		grace = DefaultCancellationGrace
	}
	return &Lifecycle{grace: grace}
}

// CancellationReason reports whether the member may cancel b at now, and the
// reason recorded on the booking when they can.
func (l *Lifecycle) CancellationReason(b *entity.Booking, now time.Time) (string, bool) {
	if b.Status == entity.BookingStatusUpcoming {
		return ReasonBeforeCheckIn, true
	}
	if b.Status != entity.BookingStatusCancelled && now.Sub(b.CreatedAt) <= l.grace {
		return ReasonWithinGrace, true
	}
	return "", false
}

// Accept completes a check-in. Refund fields are left untouched.
func (l *Lifecycle) Accept(b *entity.Booking, now time.Time) error {
	if err := requireVerifiable(b); err != nil {
		return err
	}
	b.Status = entity.BookingStatusCompleted
	b.UpdatedAt = now
	return nil
}

// Reject cancels a booking at the reception and applies the refund policy.
func (l *Lifecycle) Reject(b *entity.Booking, plan *entity.Plan, by entity.CancelledBy, reason string, now time.Time) error {
	if err := requireVerifiable(b); err != nil {
		return err
	}
	if reason == "" {
		reason = ReasonRejectedByDefault
	}
	cancel(b, plan, by, reason, now)
	return nil
}

// Cancel applies a member cancellation or returns a policy violation that
// asks the member to contact support.
func (l *Lifecycle) Cancel(b *entity.Booking, plan *entity.Plan, by entity.CancelledBy, now time.Time) error {
	reason, ok := l.CancellationReason(b, now)
	if !ok {
		return apperror.Policy(MsgCancellationPolicy, true)
	}
	cancel(b, plan, by, reason, now)
	return nil
}

// ChangeDates is permanently disabled.
func (l *Lifecycle) ChangeDates(*entity.Booking) error {
	return apperror.Policy(MsgDateChangeDisabled, false)
}

// Refund derives the refund for a booking cancelled at now. Day passes are
// refunded on the spot; anything longer waits for a manual refund.
func Refund(b *entity.Booking, plan *entity.Plan, now time.Time) entity.RefundDetails {
	if plan.IsDayPass() {
		processedAt := now
		return entity.RefundDetails{
			Status:      entity.BookingRefundProcessed,
			Amount:      b.Amount,
			ProcessedAt: &processedAt,
		}
	}
	return entity.RefundDetails{
		Status: entity.BookingRefundPending,
		Amount: b.Amount,
	}
}

func cancel(b *entity.Booking, plan *entity.Plan, by entity.CancelledBy, reason string, now time.Time) {
	b.Status = entity.BookingStatusCancelled
	b.Cancellation = &entity.Cancellation{
		Reason:      reason,
		CancelledAt: now,
		CancelledBy: by,
	}
	b.Refund = Refund(b, plan, now)
	b.UpdatedAt = now
}

func requireVerifiable(b *entity.Booking) error {
	switch b.Status {
	case entity.BookingStatusUpcoming, entity.BookingStatusActive:
		return nil
	}
	return apperror.Policy(fmt.Sprintf("Booking is already %s", b.Status), false)
}
