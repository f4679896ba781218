package service

import (
	"context"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/repository/specification"
	"gymkaana-be/internal/repository/unitofwork"
	"gymkaana-be/pkg/booking/mapper"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type IActivityService interface {
	List(ctx context.Context, caller entity.Caller, page dto.PageQuery) ([]*dto.ActivityResponse, error)
}

type activityService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory) IActivityService {
	return &activityService{uowFactory: uowFactory}
}

// List returns the most recent activity entries the caller may see: all of
// them for admins, those of their gyms for owners, their own for members.
func (s *activityService) List(ctx context.Context, caller entity.Caller, page dto.PageQuery) ([]*dto.ActivityResponse, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthenticated("Authentication required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	switch {
	case caller.IsAdmin():
	case caller.HasRole(entity.RoleOwner):
		gymIds, err := uow.GymRepository().FindIdsByOwner(ctx, caller.UserId)
		if err != nil {
			return nil, apperror.Internal("failed to load owned gyms", err)
		}
		specs = append(specs, specification.ByGymIDs{GymIDs: gymIds})
	default:
		specs = append(specs, specification.UserOwnedBy{UserID: caller.UserId})
	}

	limit := page.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	if page.Page < 1 {
		page.Page = 1
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page.Page - 1) * limit},
	)

	activities, err := uow.ActivityRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to list activities", err)
	}
	return mapper.ActivitiesToResponse(activities), nil
}
