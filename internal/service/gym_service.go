package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/serverutils"
	"gymkaana-be/internal/repository/specification"
	"gymkaana-be/internal/repository/unitofwork"
	"gymkaana-be/pkg/booking"
	bookingEvents "gymkaana-be/pkg/booking/events"
	"gymkaana-be/pkg/booking/mapper"

	"github.com/google/uuid"
)

const ActionGymRegistered = "Gym Registered"

type IGymService interface {
	List(ctx context.Context, caller entity.Caller, query dto.ListGymsQuery) ([]*dto.GymResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.GymDetailResponse, error)
	Create(ctx context.Context, caller entity.Caller, req *dto.CreateGymRequest) (*dto.GymDetailResponse, error)
	Update(ctx context.Context, caller entity.Caller, id uuid.UUID, req *dto.UpdateGymRequest) (*dto.GymResponse, error)
	Delete(ctx context.Context, caller entity.Caller, id uuid.UUID) error
}

type gymService struct {
	uowFactory unitofwork.RepositoryFactory
	gate       *booking.Gate
	dispatcher ISideEffectDispatcher
	now        func() time.Time
}

func NewGymService(uowFactory unitofwork.RepositoryFactory, gate *booking.Gate, dispatcher ISideEffectDispatcher, now func() time.Time) IGymService {
	if now == nil {
		now = time.Now
	}
	return &gymService{
		uowFactory: uowFactory,
		gate:       gate,
		dispatcher: dispatcher,
		now:        now,
	}
}

// List shows the marketplace to everyone. Admins see every gym, optionally
// filtered by owner, and owners asking for managed gyms see their own.
func (s *gymService) List(ctx context.Context, caller entity.Caller, query dto.ListGymsQuery) ([]*dto.GymResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	switch {
	case caller.IsAdmin():
		if query.OwnerId != "" {
			ownerId, err := parseId("ownerId", query.OwnerId)
			if err != nil {
				return nil, err
			}
			specs = append(specs, specification.ByOwnerID{OwnerID: ownerId})
		}
	case caller.HasRole(entity.RoleOwner) && query.Managed:
		specs = append(specs, specification.ByOwnerID{OwnerID: caller.UserId})
	default:
		specs = append(specs, specification.ByGymStatuses{Statuses: entity.PublicGymStatuses})
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	gyms, err := uow.GymRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list gyms", err)
	}
	return mapper.GymsToResponse(gyms), nil
}

func (s *gymService) GetById(ctx context.Context, id uuid.UUID) (*dto.GymDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	gym, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	plans, err := uow.PlanRepository().FindAll(ctx,
		specification.ByGymID{GymID: gym.Id},
		specification.EnabledPlans{},
		specification.OrderBy{Field: "price", Desc: false},
	)
	if err != nil {
		return nil, apperror.Internal("failed to load plans", err)
	}

	return &dto.GymDetailResponse{
		GymResponse: *mapper.GymToResponse(gym),
		Plans:       mapper.PlansToResponse(plans),
	}, nil
}

// Create registers a gym owned by caller. It starts Pending until an admin
// approves it. Plans in the request are created in the same transaction.
func (s *gymService) Create(ctx context.Context, caller entity.Caller, req *dto.CreateGymRequest) (*dto.GymDetailResponse, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthenticated("Authentication required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	gym := &entity.Gym{
		Id:               uuid.Must(uuid.NewV7()),
		OwnerId:          caller.UserId,
		Name:             strings.TrimSpace(req.Name),
		Address:          strings.TrimSpace(req.Address),
		Location:         req.Location,
		Status:           entity.GymStatusPending,
		Description:      req.Description,
		Phone:            req.Phone,
		Email:            req.Email,
		Timings:          req.Timings,
		BaseDayPassPrice: req.BaseDayPassPrice,
		Facilities:       req.Facilities,
		CreatedAt:        now,
	}

	plans := make([]*entity.Plan, 0, len(req.Plans))
	for i := range req.Plans {
		plans = append(plans, newPlan(gym.Id, &req.Plans[i], now))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.GymRepository().Create(ctx, gym); err != nil {
		return nil, apperror.Internal("failed to create gym", err)
	}
	for _, p := range plans {
		if err := uow.PlanRepository().Create(ctx, p); err != nil {
			return nil, apperror.Internal("failed to create plan", err)
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit gym", err)
	}

	s.dispatcher.Dispatch(ctx, dto.SideEffectMessage{
		Event:       bookingEvents.GymRegistered,
		UserId:      caller.UserId,
		GymId:       gym.Id,
		GymOwnerId:  gym.OwnerId,
		GymName:     gym.Name,
		Action:      ActionGymRegistered,
		Description: fmt.Sprintf("New hub %q awaiting clearance.", gym.Name),
		Type:        string(entity.ActivityTypeWarning),
		OccurredAt:  now,
	})

	return &dto.GymDetailResponse{
		GymResponse: *mapper.GymToResponse(gym),
		Plans:       mapper.PlansToResponse(plans),
	}, nil
}

func (s *gymService) Update(ctx context.Context, caller entity.Caller, id uuid.UUID, req *dto.UpdateGymRequest) (*dto.GymResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	gym, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && gym.OwnerId != caller.UserId {
		return nil, apperror.Forbidden("Not authorized to update this gym")
	}
	if req.Status != nil && !caller.IsAdmin() {
		return nil, apperror.Forbidden("Only administrators can change the gym status")
	}

	applyGymUpdate(gym, req)
	now := s.now()
	gym.UpdatedAt = &now

	if err := uow.GymRepository().Update(ctx, gym); err != nil {
		return nil, apperror.Internal("failed to update gym", err)
	}
	s.gate.Forget(gym.Id)

	return mapper.GymToResponse(gym), nil
}

// Delete soft deletes the gym and its plans. Bookings stay untouched.
func (s *gymService) Delete(ctx context.Context, caller entity.Caller, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	gym, err := s.find(ctx, uow, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && gym.OwnerId != caller.UserId {
		return apperror.Forbidden("Not authorized to delete this gym")
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.PlanRepository().DeleteByGymId(ctx, gym.Id); err != nil {
		return apperror.Internal("failed to delete plans", err)
	}
	if err := uow.GymRepository().Delete(ctx, gym.Id); err != nil {
		return apperror.Internal("failed to delete gym", err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal("failed to commit gym deletion", err)
	}

	s.gate.Forget(gym.Id)
	return nil
}

func (s *gymService) find(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Gym, error) {
	gym, err := uow.GymRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to load gym", err)
	}
	if gym == nil {
		return nil, apperror.NotFound("Gym not found")
	}
	return gym, nil
}

func applyGymUpdate(gym *entity.Gym, req *dto.UpdateGymRequest) {
	if req.Name != nil {
		gym.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		gym.Address = strings.TrimSpace(*req.Address)
	}
	if req.Location != nil {
		gym.Location = *req.Location
	}
	if req.Description != nil {
		gym.Description = *req.Description
	}
	if req.Phone != nil {
		gym.Phone = *req.Phone
	}
	if req.Email != nil {
		gym.Email = *req.Email
	}
	if req.Timings != nil {
		gym.Timings = *req.Timings
	}
	if req.BaseDayPassPrice != nil {
		gym.BaseDayPassPrice = *req.BaseDayPassPrice
	}
	if req.Facilities != nil {
		gym.Facilities = *req.Facilities
	}
	if req.Status != nil {
		gym.Status = entity.GymStatus(*req.Status)
	}
}
