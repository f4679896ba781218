package entity

import (
	"time"

	"github.com/google/uuid"
)

type GymStatus string

const (
	GymStatusPending  GymStatus = "Pending"
	GymStatusApproved GymStatus = "Approved"
	GymStatusRejected GymStatus = "Rejected"
	GymStatusActive   GymStatus = "Active"
	GymStatusInactive GymStatus = "Inactive"
)

// PublicGymStatuses are the statuses visible in the public marketplace.
var PublicGymStatuses = []GymStatus{GymStatusApproved, GymStatusActive}

type Gym struct {
	Id               uuid.UUID
	OwnerId          uuid.UUID
	Name             string
	Address          string
	Location         string
	Status           GymStatus
	Description      string
	Phone            string
	Email            string
	Timings          string
	BaseDayPassPrice float64
	Facilities       []string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
