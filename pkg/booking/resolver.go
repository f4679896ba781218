package booking

import (
	"context"
	"strings"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/repository/specification"
	"gymkaana-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// DefaultShortReferenceLength is the length of the code printed under the pass QR.
const DefaultShortReferenceLength = 8

// fullReferenceLength is the canonical uuid string length.
const fullReferenceLength = 36

var ErrBookingNotFound = apperror.NotFound("Booking not found")

// Resolver turns a scanned or typed reference into a single booking.
type Resolver struct {
	shortLength int
}

func NewResolver(shortLength int) *Resolver {
	if shortLength <= 0 || shortLength >= fullReferenceLength {
		shortLength = DefaultShortReferenceLength
	}
	return &Resolver{shortLength: shortLength}
}

// Resolve looks the reference up as a full id first and falls back to a suffix
// match when the reference has the short or full length. Among several suffix
// matches the most recently created booking wins.
func (r *Resolver) Resolve(ctx context.Context, uow unitofwork.UnitOfWork, reference string) (*entity.Booking, error) {
	ref := strings.ToLower(strings.TrimSpace(reference))
	if ref == "" {
		return nil, apperror.Validation("Missing required fields: bookingId", "bookingId")
	}

	repo := uow.BookingRepository()

	if id, err := uuid.Parse(ref); err == nil && len(ref) == fullReferenceLength {
		booking, err := repo.FindOne(ctx, specification.ByID{ID: id}, specification.WithGymAndPlan{})
		if err != nil {
			return nil, apperror.Internal("failed to look up booking", err)
		}
		if booking != nil {
			return booking, nil
		}
	}

	if len(ref) != r.shortLength && len(ref) != fullReferenceLength {
		return nil, ErrBookingNotFound
	}
	if !isReferenceText(ref) {
		return nil, ErrBookingNotFound
	}

	match, err := repo.FindNewestByIdSuffix(ctx, ref)
	if err != nil {
		return nil, apperror.Internal("failed to look up booking", err)
	}
	if match == nil {
		return nil, ErrBookingNotFound
	}

	// Reload with relations so callers see gym and plan.
	booking, err := repo.FindOne(ctx, specification.ByID{ID: match.Id}, specification.WithGymAndPlan{})
	if err != nil {
		return nil, apperror.Internal("failed to look up booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// isReferenceText accepts only characters that can appear in a canonical uuid.
func isReferenceText(ref string) bool {
	for _, c := range ref {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c == '-':
		default:
			return false
		}
	}
	return true
}
