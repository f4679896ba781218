package contract

import (
	"context"
	"errors"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/repository/specification"
)

// ErrStaleBooking is returned by Transition when the stored status no longer
// matches the status the caller validated against.
var ErrStaleBooking = errors.New("booking status changed concurrently")

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)

	// FindNewestByIdSuffix returns the most recently created booking whose id,
	// in canonical lower-case form, ends with suffix.
	FindNewestByIdSuffix(ctx context.Context, suffix string) (*entity.Booking, error)

	// Transition persists status, cancellation and refund fields of booking only
	// if the stored status still equals expected.
	Transition(ctx context.Context, booking *entity.Booking, expected entity.BookingStatus) error
}
