package booking

import (
	"context"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/repository/memory"
	"gymkaana-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Scope names the kind of access a caller asks for on a booking.
type Scope int

const (
	// ScopeVerify covers lookup and confirm at the gym reception.
	ScopeVerify Scope = iota
	// ScopeSelfService covers a member acting on their own booking.
	ScopeSelfService
	// ScopeView covers reading a single booking.
	ScopeView
)

func (s Scope) String() string {
	switch s {
	case ScopeVerify:
		return "verify"
	case ScopeSelfService:
		return "self_service"
	case ScopeView:
		return "view"
	}
	return "unknown"
}

const (
	MsgVerifyOwnGymOnly = "Authorization Failed: You can only verify check-ins for your own gym."
	MsgVerifyStaffOnly  = "Authorization Failed: Only gym owners and administrators can verify check-ins."
	MsgNotAuthorized    = "Not authorized"
)

// Gate decides whether a caller may act on a booking or on a gym's bookings.
type Gate struct {
	logger logger.ILogger
	owners *memory.GymOwnerCache
}

func NewGate(logger logger.ILogger, owners *memory.GymOwnerCache) *Gate {
	return &Gate{
		logger: logger,
		owners: owners,
	}
}

// Authorize returns nil when caller may act on booking within scope, and an
// Authorization error otherwise.
func (g *Gate) Authorize(ctx context.Context, uow unitofwork.UnitOfWork, caller entity.Caller, booking *entity.Booking, scope Scope) error {
	if caller.IsAdmin() {
		return nil
	}

	switch scope {
	case ScopeSelfService:
		if booking.UserId == caller.UserId {
			return nil
		}
		g.deny(caller, booking.GymId, booking.Id, scope)
		return apperror.Forbidden(MsgNotAuthorized)

	case ScopeView:
		if booking.UserId == caller.UserId {
			return nil
		}
		if caller.HasRole(entity.RoleOwner) {
			owns, err := g.ownsGym(ctx, uow, caller, booking.GymId)
			if err != nil {
				return err
			}
			if owns {
				return nil
			}
		}
		g.deny(caller, booking.GymId, booking.Id, scope)
		return apperror.Forbidden(MsgNotAuthorized)

	default:
		if !caller.HasRole(entity.RoleOwner) {
			g.deny(caller, booking.GymId, booking.Id, scope)
			return apperror.Forbidden(MsgVerifyStaffOnly)
		}
		owns, err := g.ownsGym(ctx, uow, caller, booking.GymId)
		if err != nil {
			return err
		}
		if !owns {
			g.deny(caller, booking.GymId, booking.Id, scope)
			return apperror.Forbidden(MsgVerifyOwnGymOnly)
		}
		return nil
	}
}

// AuthorizeGym allows admins and the gym's owner to act on all bookings of gymId.
func (g *Gate) AuthorizeGym(ctx context.Context, uow unitofwork.UnitOfWork, caller entity.Caller, gymId uuid.UUID) error {
	if caller.IsAdmin() {
		return nil
	}
	owns, err := g.ownsGym(ctx, uow, caller, gymId)
	if err != nil {
		return err
	}
	if !owns {
		g.deny(caller, gymId, uuid.Nil, ScopeVerify)
		return apperror.Forbidden(MsgNotAuthorized)
	}
	return nil
}

// Forget drops the cached owner of gymId after the gym changed or was removed.
func (g *Gate) Forget(gymId uuid.UUID) {
	if g.owners != nil {
		g.owners.Delete(gymId)
	}
}

func (g *Gate) ownsGym(ctx context.Context, uow unitofwork.UnitOfWork, caller entity.Caller, gymId uuid.UUID) (bool, error) {
	if g.owners != nil {
		if ownerId, ok := g.owners.Get(gymId); ok {
			return ownerId == caller.UserId, nil
		}
	}

	// Soft-deleted gyms keep their owner.
	ownerId, found, err := uow.GymRepository().FindOwnerId(ctx, gymId)
	if err != nil {
		return false, apperror.Internal("failed to load gym", err)
	}
	// A missing gym is treated as not owned.
	if !found {
		return false, nil
	}
	if g.owners != nil {
		g.owners.Save(gymId, ownerId)
	}
	return ownerId == caller.UserId, nil
}

func (g *Gate) deny(caller entity.Caller, gymId, bookingId uuid.UUID, scope Scope) {
	details := map[string]interface{}{
		"caller_id": caller.UserId.String(),
		"gym_id":    gymId.String(),
		"scope":     scope.String(),
	}
	if bookingId != uuid.Nil {
		details["booking_id"] = bookingId.String()
	}
	g.logger.Warn("BOOKING_GATE", "Unauthorized booking access attempt", details)
}
