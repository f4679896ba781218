package service

import (
	"context"
	"strings"
	"time"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/serverutils"
	"gymkaana-be/internal/repository/specification"
	"gymkaana-be/internal/repository/unitofwork"
	"gymkaana-be/pkg/booking"
	"gymkaana-be/pkg/booking/mapper"

	"github.com/google/uuid"
)

type PlanService interface {
	// Public
	ListByGym(ctx context.Context, gymId uuid.UUID) ([]*dto.PlanResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error)

	// Gym owner or admin
	Create(ctx context.Context, caller entity.Caller, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	Update(ctx context.Context, caller entity.Caller, id uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	Delete(ctx context.Context, caller entity.Caller, id uuid.UUID) error
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	gate       *booking.Gate
	now        func() time.Time
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, gate *booking.Gate, now func() time.Time) PlanService {
	if now == nil {
		now = time.Now
	}
	return &planService{
		uowFactory: uowFactory,
		gate:       gate,
		now:        now,
	}
}

func (s *planService) ListByGym(ctx context.Context, gymId uuid.UUID) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.PlanRepository().FindAll(ctx,
		specification.ByGymID{GymID: gymId},
		specification.OrderBy{Field: "price", Desc: false},
	)
	if err != nil {
		return nil, apperror.Internal("failed to list plans", err)
	}
	return mapper.PlansToResponse(plans), nil
}

func (s *planService) GetById(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.PlanToResponse(plan), nil
}

func (s *planService) Create(ctx context.Context, caller entity.Caller, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if strings.TrimSpace(req.GymId) == "" {
		return nil, apperror.Validation("Missing required fields: gymId", "gymId")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	gymId, err := parseId("gymId", req.GymId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	gym, err := uow.GymRepository().FindOne(ctx, specification.ByID{ID: gymId})
	if err != nil {
		return nil, apperror.Internal("failed to load gym", err)
	}
	if gym == nil {
		return nil, apperror.NotFound("Gym not found")
	}
	if err := s.gate.AuthorizeGym(ctx, uow, caller, gym.Id); err != nil {
		return nil, err
	}

	plan := newPlan(gym.Id, req, s.now())
	if err := uow.PlanRepository().Create(ctx, plan); err != nil {
		return nil, apperror.Internal("failed to create plan", err)
	}
	return mapper.PlanToResponse(plan), nil
}

// Update changes a plan's terms. Existing bookings keep the amount and dates
// they were created with.
func (s *planService) Update(ctx context.Context, caller entity.Caller, id uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeGym(ctx, uow, caller, plan.GymId); err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.Duration != nil {
		plan.Duration = strings.TrimSpace(*req.Duration)
	}
	if req.Sessions != nil {
		plan.Sessions = *req.Sessions
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Discount != nil {
		plan.Discount = *req.Discount
	}
	if req.Enabled != nil {
		plan.Enabled = *req.Enabled
	}
	now := s.now()
	plan.UpdatedAt = &now

	if err := uow.PlanRepository().Update(ctx, plan); err != nil {
		return nil, apperror.Internal("failed to update plan", err)
	}
	return mapper.PlanToResponse(plan), nil
}

func (s *planService) Delete(ctx context.Context, caller entity.Caller, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.find(ctx, uow, id)
	if err != nil {
		return err
	}
	if err := s.gate.AuthorizeGym(ctx, uow, caller, plan.GymId); err != nil {
		return err
	}

	if err := uow.PlanRepository().Delete(ctx, plan.Id); err != nil {
		return apperror.Internal("failed to delete plan", err)
	}
	return nil
}

func (s *planService) find(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Plan, error) {
	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to load plan", err)
	}
	if plan == nil {
		return nil, apperror.NotFound("Plan not found")
	}
	return plan, nil
}

func newPlan(gymId uuid.UUID, req *dto.CreatePlanRequest, now time.Time) *entity.Plan {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	sessions := req.Sessions
	if sessions <= 0 {
		sessions = 1
	}
	return &entity.Plan{
		Id:          uuid.Must(uuid.NewV7()),
		GymId:       gymId,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Duration:    strings.TrimSpace(req.Duration),
		Sessions:    sessions,
		Description: req.Description,
		Discount:    req.Discount,
		Enabled:     enabled,
		CreatedAt:   now,
	}
}
