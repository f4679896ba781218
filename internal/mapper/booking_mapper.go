package mapper

import (
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/model"
)

type BookingMapper struct {
	gyms  *GymMapper
	plans *PlanMapper
}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{
		gyms:  NewGymMapper(),
		plans: NewPlanMapper(),
	}
}

func (m *BookingMapper) ToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}

	var cancellation *entity.Cancellation
	if b.CancellationDate != nil {
		cancellation = &entity.Cancellation{CancelledAt: *b.CancellationDate}
		if b.CancellationReason != nil {
			cancellation.Reason = *b.CancellationReason
		}
		if b.CancelledBy != nil {
			cancellation.CancelledBy = entity.CancelledBy(*b.CancelledBy)
		}
	}

	refundStatus := entity.BookingRefundStatus(b.Refund.Status)
	if refundStatus == "" {
		refundStatus = entity.BookingRefundNone
	}

	return &entity.Booking{
		Id:            b.Id,
		TransactionId: b.TransactionId,
		GymId:         b.GymId,
		PlanId:        b.PlanId,
		UserId:        b.UserId,
		MemberName:    b.MemberName,
		MemberEmail:   b.MemberEmail,
		Amount:        b.Amount,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Status:        entity.BookingStatus(b.Status),
		Cancellation:  cancellation,
		Refund: entity.RefundDetails{
			Status:        refundStatus,
			Amount:        b.Refund.Amount,
			TransactionId: b.Refund.TransactionId,
			ProcessedAt:   b.Refund.ProcessedAt,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Gym:       m.gyms.ToEntity(b.Gym),
		Plan:      m.plans.ToEntity(b.Plan),
	}
}

// ToModel drops preloaded relations; they are never written through a booking.
func (m *BookingMapper) ToModel(b *entity.Booking) *model.Booking {
	if b == nil {
		return nil
	}

	out := &model.Booking{
		Id:            b.Id,
		TransactionId: b.TransactionId,
		GymId:         b.GymId,
		PlanId:        b.PlanId,
		UserId:        b.UserId,
		MemberName:    b.MemberName,
		MemberEmail:   b.MemberEmail,
		Amount:        b.Amount,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Status:        string(b.Status),
		Refund: model.BookingRefund{
			Status:        string(b.Refund.Status),
			Amount:        b.Refund.Amount,
			TransactionId: b.Refund.TransactionId,
			ProcessedAt:   b.Refund.ProcessedAt,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if out.Refund.Status == "" {
		out.Refund.Status = string(entity.BookingRefundNone)
	}

	if b.Cancellation != nil {
		reason := b.Cancellation.Reason
		by := string(b.Cancellation.CancelledBy)
		at := b.Cancellation.CancelledAt
		out.CancellationReason = &reason
		out.CancelledBy = &by
		out.CancellationDate = &at
	}

	return out
}

func (m *BookingMapper) ToEntities(bookings []*model.Booking) []*entity.Booking {
	entities := make([]*entity.Booking, len(bookings))
	for i, b := range bookings {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
