package mapper

import (
	"time"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/model"
)

type PlanMapper struct{}

func NewPlanMapper() *PlanMapper {
	return &PlanMapper{}
}

func (m *PlanMapper) ToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Plan{
		Id:          p.Id,
		GymId:       p.GymId,
		Name:        p.Name,
		Price:       p.Price,
		Duration:    p.Duration,
		Sessions:    p.Sessions,
		Description: p.Description,
		Discount:    p.Discount,
		Enabled:     p.Enabled,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *PlanMapper) ToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Plan{
		Id:          p.Id,
		GymId:       p.GymId,
		Name:        p.Name,
		Price:       p.Price,
		Duration:    p.Duration,
		Sessions:    p.Sessions,
		Description: p.Description,
		Discount:    p.Discount,
		Enabled:     p.Enabled,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *PlanMapper) ToEntities(plans []*model.Plan) []*entity.Plan {
	entities := make([]*entity.Plan, len(plans))
	for i, p := range plans {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
