package model

import "time"

type RentalStatus string

const (
	RentalPending   RentalStatus = "pending"
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
	RentalCancelled RentalStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// transitions is the allowed rental state machine. Terminal states admit
// no further transitions.
var transitions = map[RentalStatus][]RentalStatus{
	RentalPending: {RentalActive, RentalCancelled},
	RentalActive:  {RentalCompleted, RentalCancelled},
}

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalPending, RentalActive, RentalCompleted, RentalCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status frees the rented camera.
func (s RentalStatus) Terminal() bool {
	return s == RentalCompleted || s == RentalCancelled
}

func CanTransition(from, to RentalStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Rental struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"userId"`
	CameraID      int64         `json:"cameraId"`
	Camera        *Camera       `json:"camera,omitempty"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	TotalPrice    float64       `json:"totalPrice"`
	Status        RentalStatus  `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
