package models

import "time"

// Booking statuses. A booking is persisted CONFIRMED and may transition
// to CANCELLED exactly once; cancellation is irreversible.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking is one passenger reservation covering one or more seats over
// a single segment on one travel date.
type Booking struct {
	ID                      int64
	Reference               string
	PNR                     string
	PassengerName           string
	Email                   string
	Phone                   string
	FromStationID           int64
	ToStationID             int64
	TravelDate              string // YYYY-MM-DD
	Status                  string
	TotalAmount             int64
	RefundAmount            int64
	ConfirmationProbability float64
	CreatedAt               time.Time
	CancelledAt             *time.Time
}

// MealLine is one meal selection attached to a booking.
type MealLine struct {
	MealID   int64 `json:"meal_id"`
	Quantity int   `json:"quantity"`
}
