package implementation

import (
	"context"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/mapper"
	"gymkaana-be/internal/model"
	"gymkaana-be/internal/repository/contract"
	"gymkaana-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gymRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GymMapper
}

func NewGymRepository(db *gorm.DB) contract.GymRepository {
	return &gymRepositoryImpl{
		db:     db,
		mapper: mapper.NewGymMapper(),
	}
}

func (r *gymRepositoryImpl) Create(ctx context.Context, gym *entity.Gym) error {
	m := r.mapper.ToModel(gym)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	gym.CreatedAt = m.CreatedAt
	return nil
}

func (r *gymRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Gym, error) {
	var m model.Gym
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

func (r *gymRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Gym, error) {
	var models []*model.Gym
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *gymRepositoryImpl) FindIdsByOwner(ctx context.Context, ownerId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Gym{}).
		Where("owner_id = ?", ownerId).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *gymRepositoryImpl) FindOwnerId(ctx context.Context, gymId uuid.UUID) (uuid.UUID, bool, error) {
	var ownerIds []uuid.UUID
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Gym{}).
		Where("id = ?", gymId).
		Limit(1).
		Pluck("owner_id", &ownerIds).Error
	if err != nil {
		return uuid.Nil, false, err
	}
	if len(ownerIds) == 0 {
		return uuid.Nil, false, nil
	}
	return ownerIds[0], true, nil
}

func (r *gymRepositoryImpl) Update(ctx context.Context, gym *entity.Gym) error {
	m := r.mapper.ToModel(gym)
	return r.db.WithContext(ctx).Model(&model.Gym{}).
		Where("id = ?", gym.Id).
		Updates(map[string]interface{}{
			"owner_id":            m.OwnerId,
			"name":                m.Name,
			"address":             m.Address,
			"location":            m.Location,
			"status":              m.Status,
			"description":         m.Description,
			"phone":               m.Phone,
			"email":               m.Email,
			"timings":             m.Timings,
			"base_day_pass_price": m.BaseDayPassPrice,
			"facilities":          m.Facilities,
		}).Error
}

func (r *gymRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Gym{}, "id = ?", id).Error
}
