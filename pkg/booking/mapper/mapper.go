package mapper

import (
	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
)

// BookingToResponse converts entity to response DTO. shortLength sets the
// length of the printed reference code.
func BookingToResponse(b *entity.Booking, shortLength int) *dto.BookingResponse {
	if b == nil {
		return nil
	}

	res := &dto.BookingResponse{
		Id:             b.Id,
		ShortReference: b.ShortReference(shortLength),
		TransactionId:  b.TransactionId,
		GymId:          b.GymId,
		PlanId:         b.PlanId,
		UserId:         b.UserId,
		MemberName:     b.MemberName,
		MemberEmail:    b.MemberEmail,
		Amount:         b.Amount,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		Status:         string(b.Status),
		RefundDetails: dto.BookingRefundResponse{
			Status:        string(b.Refund.Status),
			Amount:        b.Refund.Amount,
			TransactionId: b.Refund.TransactionId,
			ProcessedAt:   b.Refund.ProcessedAt,
		},
		Gym:       GymToResponse(b.Gym),
		Plan:      PlanToResponse(b.Plan),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if c := b.Cancellation; c != nil {
		reason := c.Reason
		at := c.CancelledAt
		by := string(c.CancelledBy)
		res.CancellationReason = &reason
		res.CancellationDate = &at
		res.CancelledBy = &by
	}

	return res
}

// BookingsToResponse converts multiple entities; the result is never nil.
func BookingsToResponse(bookings []*entity.Booking, shortLength int) []*dto.BookingResponse {
	res := make([]*dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, BookingToResponse(b, shortLength))
	}
	return res
}

func GymToResponse(g *entity.Gym) *dto.GymResponse {
	if g == nil {
		return nil
	}
	facilities := g.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	return &dto.GymResponse{
		Id:               g.Id,
		OwnerId:          g.OwnerId,
		Name:             g.Name,
		Address:          g.Address,
		Location:         g.Location,
		Status:           string(g.Status),
		Description:      g.Description,
		Phone:            g.Phone,
		Email:            g.Email,
		Timings:          g.Timings,
		BaseDayPassPrice: g.BaseDayPassPrice,
		Facilities:       facilities,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

func GymsToResponse(gyms []*entity.Gym) []*dto.GymResponse {
	res := make([]*dto.GymResponse, 0, len(gyms))
	for _, g := range gyms {
		res = append(res, GymToResponse(g))
	}
	return res
}

func PlanToResponse(p *entity.Plan) *dto.PlanResponse {
	if p == nil {
		return nil
	}
	return &dto.PlanResponse{
		Id:          p.Id,
		GymId:       p.GymId,
		Name:        p.Name,
		Price:       p.Price,
		Duration:    p.Duration,
		Sessions:    p.Sessions,
		Description: p.Description,
		Discount:    p.Discount,
		Enabled:     p.Enabled,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func PlansToResponse(plans []*entity.Plan) []*dto.PlanResponse {
	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, PlanToResponse(p))
	}
	return res
}

func ActivityToResponse(a *entity.Activity) *dto.ActivityResponse {
	if a == nil {
		return nil
	}
	return &dto.ActivityResponse{
		Id:          a.Id,
		UserId:      a.UserId,
		GymId:       a.GymId,
		BookingId:   a.BookingId,
		Action:      a.Action,
		Description: a.Description,
		Type:        string(a.Type),
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	}
}

func ActivitiesToResponse(activities []*entity.Activity) []*dto.ActivityResponse {
	res := make([]*dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		res = append(res, ActivityToResponse(a))
	}
	return res
}
