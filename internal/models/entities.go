package models

import "time"

// User represents a registered user. There is no authentication layer; the
// table exists so bookings can reference an owner.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
}

// Flight is one search result. Immutable once selected for a session.
type Flight struct {
	ID            int64     `json:"id"`
	Airline       string    `json:"airline"`
	FlightNumber  string    `json:"flightNumber"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Duration      string    `json:"duration"`
	BaseFare      int64     `json:"baseFare"`
}

// SeatStatus is the availability state of one seat within a session.
type SeatStatus string

const (
	SeatAvailable   SeatStatus = "available"
	SeatUnavailable SeatStatus = "unavailable"
	SeatSelected    SeatStatus = "selected"
)

// CabinClass is determined solely by the seat's row number.
type CabinClass string

const (
	ClassBusiness CabinClass = "business"
	ClassEconomy  CabinClass = "economy"
)

// Seat is one position in a seat map, identified by row number plus letter
// ("3C"). Seats are generated fresh per session and never persisted.
type Seat struct {
	ID     string     `json:"id"`
	Row    int        `json:"row"`
	Letter string     `json:"letter"`
	Class  CabinClass `json:"class"`
	Status SeatStatus `json:"status"`
}

// SeatMap is the ordered seat inventory generated for one flight.
type SeatMap struct {
	FlightID int64  `json:"flightId"`
	Seats    []Seat `json:"seats"`
}

// Passengers holds the traveller counts of a search or booking.
type Passengers struct {
	Adults   int `json:"adults" binding:"required,min=1,max=9"`
	Children int `json:"children" binding:"min=0,max=9"`
	Infants  int `json:"infants" binding:"min=0,max=9"`
}

// Booking is the persisted record created once at the end of a successful
// flow. Append-only: never updated, never deleted.
type Booking struct {
	ID            int64      `json:"id" db:"id"`
	Source        string     `json:"source" db:"source"`
	Destination   string     `json:"destination" db:"destination"`
	DepartureDate string     `json:"departureDate" db:"departure_date"`
	Passengers    Passengers `json:"passengers" db:"passengers"`
	UserID        *int64     `json:"userId" db:"user_id"`
	CreatedAt     string     `json:"createdAt" db:"created_at"`
}

// FlightSearch is a search request as recorded in history and carried by a
// booking session.
type FlightSearch struct {
	ID            int64      `json:"id,omitempty"`
	Source        string     `json:"source" binding:"required"`
	Destination   string     `json:"destination" binding:"required"`
	DepartureDate string     `json:"departureDate" binding:"required"`
	Passengers    Passengers `json:"passengers"`
	CreatedAt     string     `json:"createdAt,omitempty"`
}

// PaymentMethod enumerates the accepted (simulated) payment instruments.
type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "creditCard"
	MethodDebitCard  PaymentMethod = "debitCard"
	MethodNetBanking PaymentMethod = "netBanking"
	MethodWallet     PaymentMethod = "wallet"
)

// ValidMethod reports whether m is one of the accepted payment methods.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodNetBanking, MethodWallet:
		return true
	}
	return false
}

// BillingAddress is part of the payment form. Never persisted.
type BillingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// PaymentDetails is the payment form payload. It exists only transiently to
// move a session to the confirmation step; nothing here is stored.
type PaymentDetails struct {
	Method         PaymentMethod  `json:"paymentMethod"`
	CardholderName string         `json:"cardholderName"`
	CardNumber     string         `json:"cardNumber"`
	ExpiryMonth    string         `json:"expiryMonth"`
	ExpiryYear     string         `json:"expiryYear"`
	CVV            string         `json:"cvv"`
	SaveCard       bool           `json:"saveCard"`
	BillingAddress BillingAddress `json:"billingAddress"`
}
