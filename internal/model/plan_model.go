package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Plan struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	GymId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Price       float64        `gorm:"type:decimal(10,2);not null"`
	Duration    string         `gorm:"type:varchar(100);not null"` // '1 Day', '1 Month', ...
	Sessions    int            `gorm:"not null;default:1"`
	Description string         `gorm:"type:text"`
	Discount    float64        `gorm:"type:decimal(5,2);not null;default:0"`
	Enabled     bool           `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Plan) TableName() string {
	return "plans"
}
