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

type planRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlanMapper
}

func NewPlanRepository(db *gorm.DB) contract.PlanRepository {
	return &planRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlanMapper(),
	}
}

func (r *planRepositoryImpl) Create(ctx context.Context, plan *entity.Plan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	plan.CreatedAt = m.CreatedAt
	return nil
}

func (r *planRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	var m model.Plan
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

func (r *planRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error) {
	var models []*model.Plan
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *planRepositoryImpl) Update(ctx context.Context, plan *entity.Plan) error {
	m := r.mapper.ToModel(plan)
	return r.db.WithContext(ctx).Model(&model.Plan{}).
		Where("id = ?", plan.Id).
		Updates(map[string]interface{}{
			"name":        m.Name,
			"price":       m.Price,
			"duration":    m.Duration,
			"sessions":    m.Sessions,
			"description": m.Description,
			"discount":    m.Discount,
			"enabled":     m.Enabled,
		}).Error
}

func (r *planRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Plan{}, "id = ?", id).Error
}

func (r *planRepositoryImpl) DeleteByGymId(ctx context.Context, gymId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("gym_id = ?", gymId).Delete(&model.Plan{}).Error
}
