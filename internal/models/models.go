package models

// APIResponse is the envelope used by every endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ValidationError is one field-level failure reported on a 400.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CreateBookingRequest is the body of POST /api/bookings.
type CreateBookingRequest struct {
	Source        string     `json:"source" binding:"required"`
	Destination   string     `json:"destination" binding:"required"`
	DepartureDate string     `json:"departureDate" binding:"required"`
	Passengers    Passengers `json:"passengers" binding:"required"`
	UserID        *int64     `json:"userId"`
}

// SearchFlightsRequest is the body of POST /api/search-flights.
type SearchFlightsRequest struct {
	Source        string     `json:"source" binding:"required"`
	Destination   string     `json:"destination" binding:"required"`
	DepartureDate string     `json:"departureDate" binding:"required"`
	Passengers    Passengers `json:"passengers"`
}

// CreateSessionRequest opens a booking session for a searched route.
type CreateSessionRequest struct {
	Source        string     `json:"source" binding:"required"`
	Destination   string     `json:"destination" binding:"required"`
	DepartureDate string     `json:"departureDate" binding:"required"`
	Passengers    Passengers `json:"passengers" binding:"required"`
	UserID        *int64     `json:"userId"`
}

// SelectFlightRequest carries the flight chosen from the search results.
type SelectFlightRequest struct {
	Flight Flight `json:"flight" binding:"required"`
}

// ToggleSeatRequest selects or deselects a single seat.
type ToggleSeatRequest struct {
	SeatID string `json:"seatId" binding:"required"`
}

// SessionView is the externally visible state of a booking session: the
// current step plus the payload the presentation layer renders from.
type SessionView struct {
	ID               string        `json:"id"`
	Step             string        `json:"step"`
	Search           *FlightSearch `json:"search,omitempty"`
	Flight           *Flight       `json:"flight,omitempty"`
	SeatMap          *SeatMap      `json:"seatMap,omitempty"`
	SelectedSeats    []string      `json:"selectedSeats"`
	TotalAmount      int64         `json:"totalAmount"`
	PaymentSubmitted bool          `json:"paymentSubmitted"`
	BookingID        *int64        `json:"bookingId,omitempty"`
}
