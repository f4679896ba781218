package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGymRequest struct {
	Name             string   `json:"name" validate:"required,max=255"`
	Address          string   `json:"address" validate:"required"`
	Location         string   `json:"location" validate:"max=255"`
	Description      string   `json:"description"`
	Phone            string   `json:"phone" validate:"max=50"`
	Email            string   `json:"email" validate:"omitempty,email"`
	Timings          string   `json:"timings" validate:"max=100"`
	BaseDayPassPrice float64  `json:"baseDayPassPrice" validate:"gte=0"`
	Facilities       []string `json:"facilities"`

	// Plans are created together with the gym.
	Plans []CreatePlanRequest `json:"plans" validate:"dive"`
}

// UpdateGymRequest applies only the fields that are present.
type UpdateGymRequest struct {
	Name             *string   `json:"name" validate:"omitempty,max=255"`
	Address          *string   `json:"address"`
	Location         *string   `json:"location" validate:"omitempty,max=255"`
	Description      *string   `json:"description"`
	Phone            *string   `json:"phone" validate:"omitempty,max=50"`
	Email            *string   `json:"email" validate:"omitempty,email"`
	Timings          *string   `json:"timings" validate:"omitempty,max=100"`
	BaseDayPassPrice *float64  `json:"baseDayPassPrice" validate:"omitempty,gte=0"`
	Facilities       *[]string `json:"facilities"`

	// Status may only be changed by an admin.
	Status *string `json:"status" validate:"omitempty,oneof=Pending Approved Rejected Active Inactive"`
}

type ListGymsQuery struct {
	OwnerId string `query:"ownerId"`
	Managed bool   `query:"managed"`
}

type GymResponse struct {
	Id               uuid.UUID  `json:"id"`
	OwnerId          uuid.UUID  `json:"ownerId"`
	Name             string     `json:"name"`
	Address          string     `json:"address"`
	Location         string     `json:"location"`
	Status           string     `json:"status"`
	Description      string     `json:"description"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	Timings          string     `json:"timings"`
	BaseDayPassPrice float64    `json:"baseDayPassPrice"`
	Facilities       []string   `json:"facilities"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
}

type GymDetailResponse struct {
	GymResponse
	Plans []*PlanResponse `json:"plans"`
}
