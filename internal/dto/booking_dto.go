package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest fields are listed in the order missing fields are reported.
type CreateBookingRequest struct {
	GymId       string  `json:"gymId" validate:"required"`
	PlanId      string  `json:"planId" validate:"required"`
	UserId      string  `json:"userId" validate:"required"`
	MemberName  string  `json:"memberName" validate:"required"`
	MemberEmail string  `json:"memberEmail" validate:"required"`
	Amount      float64 `json:"amount" validate:"required"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`

	Status        string `json:"status,omitempty" validate:"omitempty,oneof=upcoming active completed"`
	TransactionId string `json:"transactionId,omitempty" validate:"omitempty,max=40"`
}

type LookupBookingRequest struct {
	BookingId string `json:"bookingId" validate:"required"`
}

type ConfirmBookingRequest struct {
	BookingId string `json:"bookingId" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=accept reject"`
	Reason    string `json:"reason,omitempty" validate:"max=500"`
}

type UpdateBookingDateRequest struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

type BookingRefundResponse struct {
	Status        string     `json:"status"`
	Amount        float64    `json:"amount"`
	TransactionId *string    `json:"transactionId,omitempty"`
	ProcessedAt   *time.Time `json:"processedAt"`
}

type BookingResponse struct {
	Id             uuid.UUID `json:"id"`
	ShortReference string    `json:"shortReference"`
	TransactionId  *string   `json:"transactionId,omitempty"`

	GymId  uuid.UUID `json:"gymId"`
	PlanId uuid.UUID `json:"planId"`
	UserId uuid.UUID `json:"userId"`

	MemberName  string    `json:"memberName"`
	MemberEmail string    `json:"memberEmail"`
	Amount      float64   `json:"amount"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancellationDate   *time.Time `json:"cancellationDate,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`

	RefundDetails BookingRefundResponse `json:"refundDetails"`

	Gym  *GymResponse  `json:"gym,omitempty"`
	Plan *PlanResponse `json:"plan,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}
