package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusUpcoming, BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CancelledBy records which role initiated a cancellation.
type CancelledBy string

const (
	CancelledByUser  CancelledBy = "user"
	CancelledByOwner CancelledBy = "owner"
	CancelledByAdmin CancelledBy = "admin"
)

// BookingRefundStatus is the refund sub-state of a cancelled booking.
type BookingRefundStatus string

const (
	BookingRefundNone      BookingRefundStatus = "none"
	BookingRefundPending   BookingRefundStatus = "pending"
	BookingRefundProcessed BookingRefundStatus = "processed"
	BookingRefundFailed    BookingRefundStatus = "failed"
)

type RefundDetails struct {
	Status        BookingRefundStatus
	Amount        float64
	TransactionId *string
	ProcessedAt   *time.Time
}

// Cancellation is present only on cancelled bookings.
type Cancellation struct {
	Reason      string
	CancelledAt time.Time
	CancelledBy CancelledBy
}

// Booking is a reservation of gym access. MemberName, MemberEmail, Amount and the
// date range are snapshots taken at creation and are never re-derived.
type Booking struct {
	Id            uuid.UUID
	TransactionId *string

	GymId  uuid.UUID
	PlanId uuid.UUID
	UserId uuid.UUID

	MemberName  string
	MemberEmail string
	Amount      float64
	StartDate   time.Time
	EndDate     time.Time

	Status       BookingStatus
	Cancellation *Cancellation
	Refund       RefundDetails

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by read paths that preload relations.
	Gym  *Gym
	Plan *Plan
}

// ShortReference is the suffix printed on passes for manual entry at reception.
func (b *Booking) ShortReference(length int) string {
	s := b.Id.String()
	if length <= 0 || length >= len(s) {
		return s
	}
	return s[len(s)-length:]
}
