package mapper

import (
	"encoding/json"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/model"

	"gorm.io/datatypes"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(a *model.ActivityLog) *entity.Activity {
	if a == nil {
		return nil
	}

	metadata := make(map[string]interface{})
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	return &entity.Activity{
		Id:          a.Id,
		UserId:      a.UserId,
		GymId:       a.GymId,
		BookingId:   a.BookingId,
		Action:      a.Action,
		Description: a.Description,
		Type:        entity.ActivityType(a.Type),
		Metadata:    metadata,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *ActivityMapper) ToModel(a *entity.Activity) *model.ActivityLog {
	if a == nil {
		return nil
	}

	var metadata datatypes.JSON
	if len(a.Metadata) > 0 {
		raw, err := json.Marshal(a.Metadata)
		if err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.ActivityLog{
		Id:          a.Id,
		UserId:      a.UserId,
		GymId:       a.GymId,
		BookingId:   a.BookingId,
		Action:      a.Action,
		Description: a.Description,
		Type:        string(a.Type),
		Metadata:    metadata,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *ActivityMapper) ToEntities(logs []*model.ActivityLog) []*entity.Activity {
	entities := make([]*entity.Activity, len(logs))
	for i, a := range logs {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
