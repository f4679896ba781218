package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePlanRequest struct {
	GymId       string  `json:"gymId,omitempty"`
	Name        string  `json:"name" validate:"required,max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    string  `json:"duration" validate:"required,max=100"`
	Sessions    int     `json:"sessions" validate:"gte=0"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
	Enabled     *bool   `json:"enabled"`
}

type UpdatePlanRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    *string  `json:"duration" validate:"omitempty,max=100"`
	Sessions    *int     `json:"sessions" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Discount    *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Enabled     *bool    `json:"enabled"`
}

type PlanResponse struct {
	Id          uuid.UUID  `json:"id"`
	GymId       uuid.UUID  `json:"gymId"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Duration    string     `json:"duration"`
	Sessions    int        `json:"sessions"`
	Description string     `json:"description"`
	Discount    float64    `json:"discount"`
	Enabled     bool       `json:"enabled"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}
