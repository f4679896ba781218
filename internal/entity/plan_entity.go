package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	Id          uuid.UUID
	GymId       uuid.UUID
	Name        string
	Price       float64
	Duration    string // free text, e.g. "1 Day", "3 Months"
	Sessions    int
	Description string
	Discount    float64
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// IsDayPass reports whether the duration text denotes single-day validity.
func (p *Plan) IsDayPass() bool {
	if p == nil {
		return false
	}
	return strings.Contains(strings.ToLower(p.Duration), "day")
}
