package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Gym struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name             string         `gorm:"type:varchar(255);not null"`
	Address          string         `gorm:"type:text;not null"`
	Location         string         `gorm:"type:varchar(255)"`
	Status           string         `gorm:"type:varchar(20);not null;default:'Pending';index"`
	Description      string         `gorm:"type:text"`
	Phone            string         `gorm:"type:varchar(50)"`
	Email            string         `gorm:"type:varchar(255)"`
	Timings          string         `gorm:"type:varchar(100)"`
	BaseDayPassPrice float64        `gorm:"type:decimal(10,2);not null;default:0"`
	Facilities       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Gym) TableName() string {
	return "gyms"
}
