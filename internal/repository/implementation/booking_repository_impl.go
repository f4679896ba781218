package implementation

import (
	"context"
	"strings"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/mapper"
	"gymkaana-be/internal/model"
	"gymkaana-be/internal/repository/contract"
	"gymkaana-be/internal/repository/scope"
	"gymkaana-be/internal/repository/specification"

	"gorm.io/gorm"
)

type bookingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookingMapper
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &bookingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookingMapper(),
	}
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, booking *entity.Booking) error {
	m := r.mapper.ToModel(booking)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	booking.CreatedAt = m.CreatedAt
	booking.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *bookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var m model.Booking
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *bookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var models []*model.Booking
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *bookingRepositoryImpl) FindNewestByIdSuffix(ctx context.Context, suffix string) (*entity.Booking, error) {
	var m model.Booking
	// Matching the reversed id as a prefix lets idx_bookings_id_reversed serve the lookup.
	pattern := escapeLike(reverse(strings.ToLower(suffix))) + "%"

	err := r.db.WithContext(ctx).
		Scopes(scope.NewestFirst).
		Where("REVERSE(LOWER(CAST(id AS TEXT))) LIKE ?", pattern).
		Take(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *bookingRepositoryImpl) Transition(ctx context.Context, booking *entity.Booking, expected entity.BookingStatus) error {
	m := r.mapper.ToModel(booking)

	res := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND status = ?", booking.Id, string(expected)).
		Updates(map[string]interface{}{
			"status":                m.Status,
			"cancellation_reason":   m.CancellationReason,
			"cancellation_date":     m.CancellationDate,
			"cancelled_by":          m.CancelledBy,
			"refund_status":         m.Refund.Status,
			"refund_amount":         m.Refund.Amount,
			"refund_transaction_id": m.Refund.TransactionId,
			"refund_processed_at":   m.Refund.ProcessedAt,
			"updated_at":            booking.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrStaleBooking
	}
	return nil
}

// escapeLike neutralises LIKE wildcards; Postgres uses backslash as the default escape.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
