package workflow

import (
	"context"
	"fmt"
	"time"

	"skyfare/internal/logger"
	"skyfare/internal/messaging"
	"skyfare/internal/models"
	"skyfare/internal/payment"
	"skyfare/internal/pricing"
	"skyfare/internal/repository"
	"skyfare/internal/seatmap"
)

// Controller orchestrates the ordered steps of a booking session and carries
// state between them. Transitions for a given session are serialized: a
// transition arriving while the payment processor is still running is
// rejected with ErrTransitionInFlight rather than queued.
type Controller struct {
	store     *Store
	seats     *seatmap.Generator
	processor payment.Processor
	bookings  repository.BookingStore
	nats      *messaging.NATSClient
}

func NewController(seats *seatmap.Generator, processor payment.Processor, bookings repository.BookingStore, nats *messaging.NATSClient) *Controller {
	return &Controller{
		store:     NewStore(),
		seats:     seats,
		processor: processor,
		bookings:  bookings,
		nats:      nats,
	}
}

// CreateSession opens a session at the flights step for a searched route.
func (c *Controller) CreateSession(req *models.CreateSessionRequest) *models.SessionView {
	session := c.store.Create(req)

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.view()
}

// GetSession exposes current step plus session payload to the presentation
// layer.
func (c *Controller) GetSession(id string) (*models.SessionView, error) {
	session, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.view(), nil
}

// SelectFlight pins the chosen flight, generates a fresh seat map for it and
// advances flights → seats.
func (c *Controller) SelectFlight(ctx context.Context, id string, flight models.Flight) (*models.SessionView, error) {
	session, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.inFlight {
		return nil, ErrTransitionInFlight
	}
	if session.Step != StepFlights {
		return nil, fmt.Errorf("%w: select flight requires step %q, session is at %q",
			ErrIllegalTransition, StepFlights, session.Step)
	}
	if flight.BaseFare <= 0 || flight.Airline == "" || flight.FlightNumber == "" {
		return nil, ErrInvalidFlight
	}

	f := flight
	session.Flight = &f
	session.SeatMap = c.seats.Generate(flight.ID)
	session.selected = nil
	session.TotalAmount = 0
	session.Step = StepSeats
	session.UpdatedAt = time.Now().UTC()

	c.publish(ctx, models.EventFlightSelected, models.FlightSelectedEvent{
		SessionID:    session.ID,
		FlightNumber: flight.FlightNumber,
		Airline:      flight.Airline,
		Timestamp:    session.UpdatedAt,
	})

	return session.view(), nil
}

// ToggleSeat selects an available seat or releases a previously selected one.
// Only the passenger's own selection mutates seat status within a session.
func (c *Controller) ToggleSeat(ctx context.Context, id, seatID string) (*models.SessionView, error) {
	session, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.inFlight {
		return nil, ErrTransitionInFlight
	}
	if session.Step != StepSeats {
		return nil, fmt.Errorf("%w: seat selection requires step %q, session is at %q",
			ErrIllegalTransition, StepSeats, session.Step)
	}

	seat := session.seat(seatID)
	if seat == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSeat, seatID)
	}

	now := time.Now().UTC()
	switch seat.Status {
	case models.SeatUnavailable:
		return nil, fmt.Errorf("%w: %s", ErrSeatUnavailable, seatID)
	case models.SeatSelected:
		seat.Status = models.SeatAvailable
		session.deselect(seatID)
		c.publish(ctx, models.EventSeatReleased, models.SeatToggledEvent{
			SessionID: session.ID, SeatID: seatID, Timestamp: now,
		})
	default:
		seat.Status = models.SeatSelected
		session.selected = append(session.selected, seatID)
		c.publish(ctx, models.EventSeatSelected, models.SeatToggledEvent{
			SessionID: session.ID, SeatID: seatID, Timestamp: now,
		})
	}
	session.UpdatedAt = now

	return session.view(), nil
}

// ProceedToPayment advances seats → payment, computing and freezing the
// session total. Refused while the seat selection is empty.
func (c *Controller) ProceedToPayment(_ context.Context, id string) (*models.SessionView, error) {
	session, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.inFlight {
		return nil, ErrTransitionInFlight
	}
	if session.Step != StepSeats {
		return nil, fmt.Errorf("%w: payment requires step %q, session is at %q",
			ErrIllegalTransition, StepSeats, session.Step)
	}
	if len(session.selected) == 0 {
		return nil, ErrNoSeatsSelected
	}

	total, err := pricing.Total(session.Flight.BaseFare, session.selected)
	if err != nil {
		return nil, fmt.Errorf("failed to price selection: %w", err)
	}

	session.TotalAmount = total
	session.Step = StepPayment
	session.UpdatedAt = time.Now().UTC()

	return session.view(), nil
}

// SubmitPayment runs the simulated processor and, on settlement, commits the
// persisted booking and advances payment → confirmation as one unit. A
// storage failure leaves the session in payment with all entered state
// intact; the caller retries in place.
func (c *Controller) SubmitPayment(ctx context.Context, id string, details *models.PaymentDetails) (*models.SessionView, error) {
	session, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.inFlight {
		session.mu.Unlock()
		return nil, ErrTransitionInFlight
	}
	if session.Step != StepPayment {
		step := session.Step
		session.mu.Unlock()
		return nil, fmt.Errorf("%w: submit payment requires step %q, session is at %q",
			ErrIllegalTransition, StepPayment, step)
	}
	if fields := validatePaymentDetails(details); len(fields) > 0 {
		session.mu.Unlock()
		return nil, &PaymentValidationError{Fields: fields}
	}

	// Keep the entered form on the session before the slow phase so a
	// persistence failure never loses it.
	session.Payment = details
	session.inFlight = true
	amount := session.TotalAmount
	session.mu.Unlock()

	receipt, err := c.processor.Process(ctx, details, amount)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.inFlight = false

	if err != nil {
		return nil, fmt.Errorf("payment processing aborted: %w", err)
	}

	booking := &models.Booking{
		Source:        session.Search.Source,
		Destination:   session.Search.Destination,
		DepartureDate: session.Search.DepartureDate,
		Passengers:    session.Search.Passengers,
		UserID:        session.UserID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := c.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	session.BookingID = &booking.ID
	session.Step = StepConfirmation
	session.UpdatedAt = time.Now().UTC()

	c.publish(ctx, models.EventPaymentComplete, models.PaymentCompletedEvent{
		SessionID:     session.ID,
		TransactionID: receipt.TransactionID,
		TotalAmount:   amount,
		Timestamp:     receipt.ProcessedAt,
	})
	c.publish(ctx, models.EventBookingCreated, models.BookingCreatedEvent{
		BookingID:   booking.ID,
		Source:      booking.Source,
		Destination: booking.Destination,
		UserID:      booking.UserID,
		Timestamp:   session.UpdatedAt,
	})

	return session.view(), nil
}

// Back moves the session to the immediate predecessor of its current step.
// Entered data is kept; only an explicit reset discards it.
func (c *Controller) Back(_ context.Context, id string) (*models.SessionView, error) {
	session, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.inFlight {
		return nil, ErrTransitionInFlight
	}

	prev, ok := session.Step.Prev()
	if !ok {
		return nil, fmt.Errorf("%w: no predecessor for step %q", ErrIllegalTransition, session.Step)
	}

	session.Step = prev
	session.UpdatedAt = time.Now().UTC()

	return session.view(), nil
}

// Reset is the "book another" teardown: flight, seats, total and payment
// details are cleared and the session returns to the flights step, equivalent
// to a freshly created session for the same search.
func (c *Controller) Reset(ctx context.Context, id string) (*models.SessionView, error) {
	session, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.inFlight {
		return nil, ErrTransitionInFlight
	}

	session.Flight = nil
	session.SeatMap = nil
	session.selected = nil
	session.TotalAmount = 0
	session.Payment = nil
	session.BookingID = nil
	session.Step = StepFlights
	session.UpdatedAt = time.Now().UTC()

	c.publish(ctx, models.EventSessionReset, models.SessionResetEvent{
		SessionID: session.ID,
		Timestamp: session.UpdatedAt,
	})

	return session.view(), nil
}

func validatePaymentDetails(details *models.PaymentDetails) []models.ValidationError {
	var fields []models.ValidationError

	if details == nil {
		return []models.ValidationError{{Field: "paymentMethod", Message: "payment details are required"}}
	}
	if !models.ValidMethod(details.Method) {
		fields = append(fields, models.ValidationError{
			Field: "paymentMethod", Message: "must be one of creditCard, debitCard, netBanking, wallet"})
	}
	if details.CardholderName == "" {
		fields = append(fields, models.ValidationError{
			Field: "cardholderName", Message: "Name is required"})
	}
	if details.CardNumber == "" {
		fields = append(fields, models.ValidationError{
			Field: "cardNumber", Message: "Card number is required"})
	}
	return fields
}

func (c *Controller) publish(ctx context.Context, subject string, event any) {
	if err := c.nats.Publish(subject, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"subject", subject)
	}
}
