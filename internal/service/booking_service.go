package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/pkg/serverutils"
	"gymkaana-be/internal/repository/contract"
	"gymkaana-be/internal/repository/specification"
	"gymkaana-be/internal/repository/unitofwork"
	"gymkaana-be/pkg/booking"
	bookingEvents "gymkaana-be/pkg/booking/events"
	"gymkaana-be/pkg/booking/mapper"

	"github.com/google/uuid"
)

const (
	ActionBookingCreated   = "Booking Created"
	ActionCheckInVerified  = "Check-in Verified"
	ActionCheckInRejected  = "Check-in Rejected"
	ActionBookingCancelled = "Booking Cancelled"
)

var errStaleBooking = apperror.Conflict("Booking was modified by another request, please reload and retry")

type IBookingService interface {
	Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	List(ctx context.Context, caller entity.Caller, page dto.PageQuery) ([]*dto.BookingResponse, error)
	ListMine(ctx context.Context, caller entity.Caller) ([]*dto.BookingResponse, error)
	ListByGym(ctx context.Context, caller entity.Caller, gymId uuid.UUID) ([]*dto.BookingResponse, error)
	GetById(ctx context.Context, caller entity.Caller, id uuid.UUID) (*dto.BookingResponse, error)
	Lookup(ctx context.Context, caller entity.Caller, req *dto.LookupBookingRequest) (*dto.BookingResponse, error)
	Confirm(ctx context.Context, caller entity.Caller, req *dto.ConfirmBookingRequest) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, caller entity.Caller, id uuid.UUID) (*dto.BookingResponse, error)
	UpdateDate(ctx context.Context, caller entity.Caller, id uuid.UUID, req *dto.UpdateBookingDateRequest) error
}

type BookingServiceConfig struct {
	ShortReferenceLength  int
	RestrictMemberListing bool
}

type bookingService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *booking.Resolver
	gate       *booking.Gate
	lifecycle  *booking.Lifecycle
	dispatcher ISideEffectDispatcher
	logger     logger.ILogger
	cfg        BookingServiceConfig
	now        func() time.Time
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	resolver *booking.Resolver,
	gate *booking.Gate,
	lifecycle *booking.Lifecycle,
	dispatcher ISideEffectDispatcher,
	logger logger.ILogger,
	cfg BookingServiceConfig,
	now func() time.Time,
) IBookingService {
	if now == nil {
		now = time.Now
	}
	if cfg.ShortReferenceLength <= 0 {
		cfg.ShortReferenceLength = booking.DefaultShortReferenceLength
	}
	return &bookingService{
		uowFactory: uowFactory,
		resolver:   resolver,
		gate:       gate,
		lifecycle:  lifecycle,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		now:        now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	gymId, err := parseId("gymId", req.GymId)
	if err != nil {
		return nil, err
	}
	planId, err := parseId("planId", req.PlanId)
	if err != nil {
		return nil, err
	}
	userId, err := parseId("userId", req.UserId)
	if err != nil {
		return nil, err
	}
	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be greater than 0", "amount")
	}
	if startDate.After(endDate) {
		return nil, apperror.Validation("startDate must not be after endDate", "startDate", "endDate")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	gym, err := uow.GymRepository().FindOne(ctx, specification.ByID{ID: gymId})
	if err != nil {
		return nil, apperror.Internal("failed to load gym", err)
	}
	if gym == nil {
		return nil, apperror.NotFound("Gym not found")
	}

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, apperror.Internal("failed to load plan", err)
	}
	if plan == nil {
		return nil, apperror.NotFound("Plan not found")
	}
	if plan.GymId != gym.Id {
		return nil, apperror.Validation("Plan does not belong to the selected gym", "planId")
	}

	now := s.now()
	status := entity.BookingStatusUpcoming
	if req.Status != "" {
		status = entity.BookingStatus(req.Status)
	}
	transactionId := strings.TrimSpace(req.TransactionId)
	if transactionId == "" {
		transactionId = booking.NewTransactionId(now)
	}

	b := &entity.Booking{
		Id:            uuid.Must(uuid.NewV7()),
		TransactionId: &transactionId,
		GymId:         gym.Id,
		PlanId:        plan.Id,
		UserId:        userId,
		MemberName:    strings.TrimSpace(req.MemberName),
		MemberEmail:   strings.TrimSpace(req.MemberEmail),
		Amount:        req.Amount,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        status,
		Refund:        entity.RefundDetails{Status: entity.BookingRefundNone},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uow.BookingRepository().Create(ctx, b); err != nil {
		return nil, apperror.Internal("failed to create booking", err)
	}

	b.Gym = gym
	b.Plan = plan
	res := mapper.BookingToResponse(b, s.cfg.ShortReferenceLength)

	s.dispatcher.Dispatch(ctx, dto.SideEffectMessage{
		Event:       bookingEvents.BookingCreated,
		UserId:      b.UserId,
		GymId:       b.GymId,
		GymOwnerId:  gym.OwnerId,
		Action:      ActionBookingCreated,
		Description: fmt.Sprintf("New booking for ₹%v secured.", b.Amount),
		Type:        string(entity.ActivityTypeSuccess),
		Booking:     res,
		OccurredAt:  now,
	})

	return res, nil
}

// List returns every booking visible to caller. Owners that are not admins
// see only bookings of their own gyms. Other callers see all bookings unless
// member listing is restricted, in which case they see their own.
func (s *bookingService) List(ctx context.Context, caller entity.Caller, page dto.PageQuery) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.WithGymAndPlan{}}

	switch {
	case caller.IsAdmin():
	case caller.IsOwnerOnly():
		gymIds, err := uow.GymRepository().FindIdsByOwner(ctx, caller.UserId)
		if err != nil {
			return nil, apperror.Internal("failed to load owned gyms", err)
		}
		specs = append(specs, specification.ByGymIDs{GymIDs: gymIds})
	case s.cfg.RestrictMemberListing:
		specs = append(specs, specification.UserOwnedBy{UserID: caller.UserId})
	}

	specs = append(specs, newestFirst()...)
	if page.Limit > 0 {
		if page.Page < 1 {
			page.Page = 1
		}
		specs = append(specs, specification.Pagination{Limit: page.Limit, Offset: (page.Page - 1) * page.Limit})
	}

	bookings, err := uow.BookingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list bookings", err)
	}
	return mapper.BookingsToResponse(bookings, s.cfg.ShortReferenceLength), nil
}

func (s *bookingService) ListMine(ctx context.Context, caller entity.Caller) ([]*dto.BookingResponse, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthenticated("Authentication required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := append([]specification.Specification{
		specification.UserOwnedBy{UserID: caller.UserId},
		specification.WithGymAndPlan{},
	}, newestFirst()...)

	bookings, err := uow.BookingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list bookings", err)
	}
	return mapper.BookingsToResponse(bookings, s.cfg.ShortReferenceLength), nil
}

func (s *bookingService) ListByGym(ctx context.Context, caller entity.Caller, gymId uuid.UUID) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.gate.AuthorizeGym(ctx, uow, caller, gymId); err != nil {
		return nil, err
	}

	specs := append([]specification.Specification{
		specification.ByGymID{GymID: gymId},
		specification.WithGymAndPlan{},
	}, newestFirst()...)

	bookings, err := uow.BookingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list bookings", err)
	}
	return mapper.BookingsToResponse(bookings, s.cfg.ShortReferenceLength), nil
}

func (s *bookingService) GetById(ctx context.Context, caller entity.Caller, id uuid.UUID) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	b, err := s.findById(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, uow, caller, b, booking.ScopeView); err != nil {
		return nil, err
	}
	return mapper.BookingToResponse(b, s.cfg.ShortReferenceLength), nil
}

// Lookup resolves a scanned or typed reference for the reception desk.
func (s *bookingService) Lookup(ctx context.Context, caller entity.Caller, req *dto.LookupBookingRequest) (*dto.BookingResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	b, err := s.resolver.Resolve(ctx, uow, req.BookingId)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, uow, caller, b, booking.ScopeVerify); err != nil {
		return nil, err
	}
	return mapper.BookingToResponse(b, s.cfg.ShortReferenceLength), nil
}

// Confirm accepts or rejects a check-in.
func (s *bookingService) Confirm(ctx context.Context, caller entity.Caller, req *dto.ConfirmBookingRequest) (*dto.BookingResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	b, err := s.resolver.Resolve(ctx, uow, req.BookingId)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, uow, caller, b, booking.ScopeVerify); err != nil {
		return nil, err
	}

	now := s.now()
	expected := b.Status
	reason := strings.TrimSpace(req.Reason)

	msg := dto.SideEffectMessage{
		UserId:     b.UserId,
		GymId:      b.GymId,
		GymOwnerId: gymOwnerOf(b),
		OccurredAt: now,
	}

	if req.Action == "accept" {
		if err := s.lifecycle.Accept(b, now); err != nil {
			return nil, err
		}
		msg.Event = bookingEvents.CheckInVerified
		msg.Action = ActionCheckInVerified
		msg.Description = fmt.Sprintf("Member %s checked in successfully.", b.MemberName)
		msg.Type = string(entity.ActivityTypeSuccess)
	} else {
		plan, err := s.planOf(ctx, uow, b)
		if err != nil {
			return nil, err
		}
		by := entity.CancelledByOwner
		if caller.IsAdmin() {
			by = entity.CancelledByAdmin
		}
		if err := s.lifecycle.Reject(b, plan, by, reason, now); err != nil {
			return nil, err
		}
		shownReason := reason
		if shownReason == "" {
			shownReason = "Not specified"
		}
		msg.Event = bookingEvents.CheckInRejected
		msg.Action = ActionCheckInRejected
		msg.Description = fmt.Sprintf("Entry for %s rejected. Reason: %s", b.MemberName, shownReason)
		msg.Type = string(entity.ActivityTypeWarning)
		msg.Reason = b.Cancellation.Reason
	}

	if err := s.persistTransition(ctx, uow, b, expected); err != nil {
		return nil, err
	}

	res := mapper.BookingToResponse(b, s.cfg.ShortReferenceLength)
	msg.Booking = res
	s.dispatcher.Dispatch(ctx, msg)

	return res, nil
}

// Cancel is the member self-service cancellation. Admins may cancel on a
// member's behalf.
func (s *bookingService) Cancel(ctx context.Context, caller entity.Caller, id uuid.UUID) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	b, err := s.findById(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, uow, caller, b, booking.ScopeSelfService); err != nil {
		return nil, err
	}

	plan, err := s.planOf(ctx, uow, b)
	if err != nil {
		return nil, err
	}

	by := entity.CancelledByUser
	if caller.IsAdmin() && b.UserId != caller.UserId {
		by = entity.CancelledByAdmin
	}

	now := s.now()
	expected := b.Status
	if err := s.lifecycle.Cancel(b, plan, by, now); err != nil {
		return nil, err
	}

	if err := s.persistTransition(ctx, uow, b, expected); err != nil {
		return nil, err
	}

	res := mapper.BookingToResponse(b, s.cfg.ShortReferenceLength)
	s.dispatcher.Dispatch(ctx, dto.SideEffectMessage{
		Event:       bookingEvents.BookingCancelled,
		UserId:      b.UserId,
		GymId:       b.GymId,
		GymOwnerId:  gymOwnerOf(b),
		Action:      ActionBookingCancelled,
		Description: fmt.Sprintf("Booking %s cancelled by user. Reason: %s", b.Id, b.Cancellation.Reason),
		Type:        string(entity.ActivityTypeWarning),
		Booking:     res,
		Reason:      b.Cancellation.Reason,
		OccurredAt:  now,
	})

	return res, nil
}

// UpdateDate is kept for clients that still call it; date changes are disabled.
func (s *bookingService) UpdateDate(ctx context.Context, caller entity.Caller, id uuid.UUID, req *dto.UpdateBookingDateRequest) error {
	return s.lifecycle.ChangeDates(nil)
}

func (s *bookingService) findById(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Booking, error) {
	b, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: id}, specification.WithGymAndPlan{})
	if err != nil {
		return nil, apperror.Internal("failed to load booking", err)
	}
	if b == nil {
		return nil, booking.ErrBookingNotFound
	}
	return b, nil
}

// planOf returns the preloaded plan or loads it. A deleted plan yields nil,
// which the refund policy treats as a non day pass.
func (s *bookingService) planOf(ctx context.Context, uow unitofwork.UnitOfWork, b *entity.Booking) (*entity.Plan, error) {
	if b.Plan != nil {
		return b.Plan, nil
	}
	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: b.PlanId})
	if err != nil {
		return nil, apperror.Internal("failed to load plan", err)
	}
	return plan, nil
}

func (s *bookingService) persistTransition(ctx context.Context, uow unitofwork.UnitOfWork, b *entity.Booking, expected entity.BookingStatus) error {
	err := uow.BookingRepository().Transition(ctx, b, expected)
	if errors.Is(err, contract.ErrStaleBooking) {
		s.logger.Warn("BOOKING", "Concurrent booking transition rejected", map[string]interface{}{
			"booking_id": b.Id.String(),
			"expected":   string(expected),
			"target":     string(b.Status),
		})
		return errStaleBooking
	}
	if err != nil {
		return apperror.Internal("failed to update booking", err)
	}
	return nil
}

func gymOwnerOf(b *entity.Booking) uuid.UUID {
	if b.Gym != nil {
		return b.Gym.OwnerId
	}
	return uuid.Nil
}

func newestFirst() []specification.Specification {
	return []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.OrderBy{Field: "id", Desc: true},
	}
}

func parseId(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid "+field, field)
	}
	return id, nil
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperror.Validation("Invalid "+field, field)
}
