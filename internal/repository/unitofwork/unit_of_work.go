package unitofwork

import (
	"context"

	"gymkaana-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BookingRepository() contract.BookingRepository
	GymRepository() contract.GymRepository
	PlanRepository() contract.PlanRepository
	ActivityRepository() contract.ActivityRepository
}
