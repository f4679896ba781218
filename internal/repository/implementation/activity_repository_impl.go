package implementation

import (
	"context"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/mapper"
	"gymkaana-be/internal/model"
	"gymkaana-be/internal/repository/contract"
	"gymkaana-be/internal/repository/specification"

	"gorm.io/gorm"
)

type activityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityMapper
}

func NewActivityRepository(db *gorm.DB) contract.ActivityRepository {
	return &activityRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityMapper(),
	}
}

func (r *activityRepositoryImpl) Create(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(activity)).Error
}

func (r *activityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Activity, error) {
	var models []*model.ActivityLog
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}
