package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType is the severity tag shown next to an activity entry.
type ActivityType string

const (
	ActivityTypeSuccess ActivityType = "success"
	ActivityTypeWarning ActivityType = "warning"
	ActivityTypeInfo    ActivityType = "info"
	ActivityTypeError   ActivityType = "error"
)

type Activity struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	GymId       uuid.UUID
	BookingId   *uuid.UUID
	Action      string
	Description string
	Type        ActivityType
	Metadata    map[string]interface{}
	CreatedAt   time.Time
}
