package booking_test

import (
	"strings"
	"testing"
	"time"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/pkg/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	target := uuid.MustParse("0190f3a8-4444-7000-8000-00000000abcd")
	older := uuid.MustParse("0190f3a8-4444-7000-8000-10000000abcd")
	newer := uuid.MustParse("0190f3a8-4444-7000-8000-20000000abcd")

	tests := []struct {
		name      string
		bookings  []entity.Booking
		reference string
		wantId    uuid.UUID
		wantKind  apperror.Kind
	}{
		{
			name:      "full id",
			bookings:  []entity.Booking{newBooking(target, entity.BookingStatusUpcoming, bookingNow)},
			reference: target.String(),
			wantId:    target,
		},
		{
			name:      "full id in upper case with spaces",
			bookings:  []entity.Booking{newBooking(target, entity.BookingStatusUpcoming, bookingNow)},
			reference: "  " + strings.ToUpper(target.String()) + " ",
			wantId:    target,
		},
		{
			name:      "short reference",
			bookings:  []entity.Booking{newBooking(target, entity.BookingStatusUpcoming, bookingNow)},
			reference: "0000abcd",
			wantId:    target,
		},
		{
			name:      "short reference in upper case",
			bookings:  []entity.Booking{newBooking(target, entity.BookingStatusUpcoming, bookingNow)},
			reference: "0000ABCD",
			wantId:    target,
		},
		{
			name: "colliding suffix resolves to newest booking",
			bookings: []entity.Booking{
				newBooking(older, entity.BookingStatusUpcoming, bookingNow.Add(-time.Hour)),
				newBooking(newer, entity.BookingStatusUpcoming, bookingNow),
			},
			reference: "0000abcd",
			wantId:    newer,
		},
		{
			name:      "unknown full id",
			bookings:  []entity.Booking{newBooking(target, entity.BookingStatusUpcoming, bookingNow)},
			reference: uuid.MustParse("0190f3a8-4444-7000-8000-00000000ffff").String(),
			wantKind:  apperror.KindNotFound,
		},
		{
			name:      "unknown short reference",
			bookings:  []entity.Booking{newBooking(target, entity.BookingStatusUpcoming, bookingNow)},
			reference: "deadbeef",
			wantKind:  apperror.KindNotFound,
		},
		{
			name:      "reference of another length",
			bookings:  []entity.Booking{newBooking(target, entity.BookingStatusUpcoming, bookingNow)},
			reference: "abcd",
			wantKind:  apperror.KindNotFound,
		},
		{
			name:      "short reference with wildcard characters",
			bookings:  []entity.Booking{newBooking(target, entity.BookingStatusUpcoming, bookingNow)},
			reference: "%%%%abcd",
			wantKind:  apperror.KindNotFound,
		},
		{
			name:      "empty reference",
			reference: "   ",
			wantKind:  apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore()
			for _, b := range tt.bookings {
				store.PutBooking(b)
			}

			resolver := booking.NewResolver(booking.DefaultShortReferenceLength)
			got, err := resolver.Resolve(background(), store.NewUnitOfWork(background()), tt.reference)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, tt.wantKind), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantId, got.Id)
			assert.NotNil(t, got.Gym, "gym is preloaded")
			assert.NotNil(t, got.Plan, "plan is preloaded")
		})
	}
}

func TestResolver_ConfiguredShortLength(t *testing.T) {
	target := uuid.MustParse("0190f3a8-4444-7000-8000-00000000abcd")
	store := seededStore()
	store.PutBooking(newBooking(target, entity.BookingStatusUpcoming, bookingNow))

	resolver := booking.NewResolver(6)

	got, err := resolver.Resolve(background(), store.NewUnitOfWork(background()), "00abcd")
	require.NoError(t, err)
	assert.Equal(t, target, got.Id)

	_, err = resolver.Resolve(background(), store.NewUnitOfWork(background()), "0000abcd")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
