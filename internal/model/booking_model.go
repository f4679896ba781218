package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingRefund is embedded into the bookings table with the refund_ prefix.
type BookingRefund struct {
	Status        string  `gorm:"type:varchar(20);not null;default:'none'"`
	Amount        float64 `gorm:"type:decimal(10,2);not null;default:0"`
	TransactionId *string `gorm:"type:varchar(100)"`
	ProcessedAt   *time.Time
}

type Booking struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionId *string   `gorm:"type:varchar(40);uniqueIndex"`

	GymId  uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`

	MemberName  string    `gorm:"type:varchar(255);not null"`
	MemberEmail string    `gorm:"type:varchar(255);not null"`
	Amount      float64   `gorm:"type:decimal(10,2);not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`

	Status string `gorm:"type:varchar(20);not null;default:'upcoming';index"`

	CancellationReason *string `gorm:"type:text"`
	CancellationDate   *time.Time
	CancelledBy        *string `gorm:"type:varchar(10)"`

	Refund BookingRefund `gorm:"embedded;embeddedPrefix:refund_"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	// Relations
	Gym  *Gym  `gorm:"foreignKey:GymId"`
	Plan *Plan `gorm:"foreignKey:PlanId"`
}

func (Booking) TableName() string {
	return "bookings"
}
