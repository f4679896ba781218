package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityLog struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	GymId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	BookingId   *uuid.UUID     `gorm:"type:uuid;index"`
	Action      string         `gorm:"type:varchar(100);not null"`
	Description string         `gorm:"type:text;not null"`
	Type        string         `gorm:"type:varchar(20);not null;default:'info'"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
