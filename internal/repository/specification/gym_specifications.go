package specification

import (
	"gymkaana-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByOwnerID struct {
	OwnerID uuid.UUID
}

func (s ByOwnerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

type ByGymStatuses struct {
	Statuses []entity.GymStatus
}

func (s ByGymStatuses) Apply(db *gorm.DB) *gorm.DB {
	values := make([]string, len(s.Statuses))
	for i, st := range s.Statuses {
		values[i] = string(st)
	}
	return db.Where("status IN ?", values)
}

type EnabledPlans struct{}

func (s EnabledPlans) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("enabled = ?", true)
}
