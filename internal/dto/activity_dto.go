package dto

import (
	"time"

	"github.com/google/uuid"
)

type ActivityResponse struct {
	Id          uuid.UUID              `json:"id"`
	UserId      uuid.UUID              `json:"userId"`
	GymId       uuid.UUID              `json:"gymId"`
	BookingId   *uuid.UUID             `json:"bookingId,omitempty"`
	Action      string                 `json:"action"`
	Description string                 `json:"description"`
	Type        string                 `json:"type"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// SideEffectMessage is the payload queued after a committed booking or gym
// change. The worker turns it into an activity log entry, a domain event and,
// for new bookings, the pass email.
type SideEffectMessage struct {
	Event       string    `json:"event"`
	UserId      uuid.UUID `json:"userId"`
	GymId       uuid.UUID `json:"gymId"`
	GymOwnerId  uuid.UUID `json:"gymOwnerId"`
	GymName     string    `json:"gymName,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Type        string    `json:"type"`

	Booking *BookingResponse `json:"booking,omitempty"`
	Reason  string           `json:"reason,omitempty"`

	OccurredAt time.Time `json:"occurredAt"`
}
