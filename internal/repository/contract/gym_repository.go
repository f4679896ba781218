package contract

import (
	"context"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GymRepository interface {
	Create(ctx context.Context, gym *entity.Gym) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Gym, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Gym, error)
	// FindIdsByOwner and FindOwnerId include soft-deleted gyms.
	FindIdsByOwner(ctx context.Context, ownerId uuid.UUID) ([]uuid.UUID, error)
	FindOwnerId(ctx context.Context, gymId uuid.UUID) (uuid.UUID, bool, error)
	Update(ctx context.Context, gym *entity.Gym) error
	Delete(ctx context.Context, id uuid.UUID) error
}
