package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByGymID struct {
	GymID uuid.UUID
}

func (s ByGymID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("gym_id = ?", s.GymID)
}

// ByGymIDs matches nothing when GymIDs is empty, so an owner without gyms sees no rows.
type ByGymIDs struct {
	GymIDs []uuid.UUID
}

func (s ByGymIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.GymIDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("gym_id IN ?", s.GymIDs)
}

// WithGymAndPlan preloads the gym and plan of each booking.
type WithGymAndPlan struct{}

func (s WithGymAndPlan) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Gym").Preload("Plan")
}
