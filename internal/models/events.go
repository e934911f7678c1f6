package models

import "time"

// NATS event subjects
const (
	EventBookingCreated  = "booking.created"
	EventFlightSelected  = "session.flight_selected"
	EventSeatSelected    = "session.seat_selected"
	EventSeatReleased    = "session.seat_released"
	EventPaymentComplete = "payment.completed"
	EventSessionReset    = "session.reset"
)

// BookingCreatedEvent is published when a booking record is persisted.
type BookingCreatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	UserID      *int64    `json:"user_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// FlightSelectedEvent is published when a session moves to seat selection.
type FlightSelectedEvent struct {
	SessionID    string    `json:"session_id"`
	FlightNumber string    `json:"flight_number"`
	Airline      string    `json:"airline"`
	Timestamp    time.Time `json:"timestamp"`
}

// SeatToggledEvent is published on seat selection and release.
type SeatToggledEvent struct {
	SessionID string    `json:"session_id"`
	SeatID    string    `json:"seat_id"`
	Timestamp time.Time `json:"timestamp"`
}

// PaymentCompletedEvent is published after the simulated processor settles.
type PaymentCompletedEvent struct {
	SessionID     string    `json:"session_id"`
	TransactionID string    `json:"transaction_id"`
	TotalAmount   int64     `json:"total_amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// SessionResetEvent is published on a full session teardown.
type SessionResetEvent struct {
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}
