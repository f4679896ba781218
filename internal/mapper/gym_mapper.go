package mapper

import (
	"encoding/json"
	"time"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/model"

	"gorm.io/datatypes"
)

type GymMapper struct{}

func NewGymMapper() *GymMapper {
	return &GymMapper{}
}

func (m *GymMapper) ToEntity(g *model.Gym) *entity.Gym {
	if g == nil {
		return nil
	}

	facilities := make([]string, 0)
	if len(g.Facilities) > 0 {
		// Malformed JSON leaves facilities empty rather than failing the read.
		_ = json.Unmarshal(g.Facilities, &facilities)
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		t := g.UpdatedAt
		updatedAt = &t
	}

	return &entity.Gym{
		Id:               g.Id,
		OwnerId:          g.OwnerId,
		Name:             g.Name,
		Address:          g.Address,
		Location:         g.Location,
		Status:           entity.GymStatus(g.Status),
		Description:      g.Description,
		Phone:            g.Phone,
		Email:            g.Email,
		Timings:          g.Timings,
		BaseDayPassPrice: g.BaseDayPassPrice,
		Facilities:       facilities,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *GymMapper) ToModel(g *entity.Gym) *model.Gym {
	if g == nil {
		return nil
	}

	facilities := g.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	raw, _ := json.Marshal(facilities)

	var updatedAt time.Time
	if g.UpdatedAt != nil {
		updatedAt = *g.UpdatedAt
	}

	return &model.Gym{
		Id:               g.Id,
		OwnerId:          g.OwnerId,
		Name:             g.Name,
		Address:          g.Address,
		Location:         g.Location,
		Status:           string(g.Status),
		Description:      g.Description,
		Phone:            g.Phone,
		Email:            g.Email,
		Timings:          g.Timings,
		BaseDayPassPrice: g.BaseDayPassPrice,
		Facilities:       datatypes.JSON(raw),
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *GymMapper) ToEntities(gyms []*model.Gym) []*entity.Gym {
	entities := make([]*entity.Gym, len(gyms))
	for i, g := range gyms {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
