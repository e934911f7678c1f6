package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfare/internal/models"
	"skyfare/internal/payment"
	"skyfare/internal/repository"
	"skyfare/internal/seatmap"
)

func testController(t *testing.T, delay time.Duration) (*Controller, *repository.MemBookingStore) {
	t.Helper()

	bookings := repository.NewMemBookingStore()
	c := NewController(
		seatmap.NewWithSource(rand.NewSource(42)),
		payment.NewSimulatedProcessor(payment.Config{ProcessingDelay: delay}),
		bookings,
		nil,
	)
	return c, bookings
}

func testSessionRequest() *models.CreateSessionRequest {
	userID := int64(7)
	return &models.CreateSessionRequest{
		Source:        "Delhi",
		Destination:   "Mumbai",
		DepartureDate: "2026-09-15",
		Passengers:    models.Passengers{Adults: 2, Children: 1},
		UserID:        &userID,
	}
}

func testFlight() models.Flight {
	return models.Flight{
		ID:           101,
		Airline:      "Indigo",
		FlightNumber: "INDIGO4821",
		Source:       "Delhi",
		Destination:  "Mumbai",
		BaseFare:     5000,
	}
}

func testPayment() *models.PaymentDetails {
	return &models.PaymentDetails{
		Method:         models.MethodCreditCard,
		CardholderName: "Asha Rao",
		CardNumber:     "4111111111111111",
	}
}

// firstSeat returns the id of the first seat in the given status, preferring
// economy rows unless business is requested.
func firstSeat(t *testing.T, view *models.SessionView, status models.SeatStatus, business bool) string {
	t.Helper()

	for _, seat := range view.SeatMap.Seats {
		if seat.Status != status {
			continue
		}
		if business != (seat.Class == models.ClassBusiness) {
			continue
		}
		return seat.ID
	}
	t.Fatalf("no seat with status %q (business=%v) in map", status, business)
	return ""
}

func TestHappyPath(t *testing.T) {
	ctx := context.Background()
	c, bookings := testController(t, time.Millisecond)

	view := c.CreateSession(testSessionRequest())
	assert.Equal(t, "flights", view.Step)
	assert.NotEmpty(t, view.ID)
	assert.Empty(t, view.SelectedSeats)

	view, err := c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)
	assert.Equal(t, "seats", view.Step)
	require.NotNil(t, view.SeatMap)
	assert.Len(t, view.SeatMap.Seats, seatmap.TotalSeats)

	economy := firstSeat(t, view, models.SeatAvailable, false)
	business := firstSeat(t, view, models.SeatAvailable, true)

	view, err = c.ToggleSeat(ctx, view.ID, economy)
	require.NoError(t, err)
	view, err = c.ToggleSeat(ctx, view.ID, business)
	require.NoError(t, err)
	assert.Equal(t, []string{economy, business}, view.SelectedSeats)

	view, err = c.ProceedToPayment(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "payment", view.Step)
	// one economy seat at base fare plus one business seat at triple fare
	assert.Equal(t, int64(5000+3*5000), view.TotalAmount)

	view, err = c.SubmitPayment(ctx, view.ID, testPayment())
	require.NoError(t, err)
	assert.Equal(t, "confirmation", view.Step)
	assert.True(t, view.PaymentSubmitted)
	require.NotNil(t, view.BookingID)

	booking, err := bookings.GetByID(ctx, *view.BookingID)
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, "Delhi", booking.Source)
	assert.Equal(t, "Mumbai", booking.Destination)
	assert.Equal(t, "2026-09-15", booking.DepartureDate)
	assert.Equal(t, 2, booking.Passengers.Adults)
	require.NotNil(t, booking.UserID)
	assert.Equal(t, int64(7), *booking.UserID)

	createdAt, err := time.Parse(time.RFC3339, booking.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), createdAt, time.Minute)
}

func TestViewIsIsolatedFromLaterToggles(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := c.CreateSession(testSessionRequest())

	view, err := c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)

	seat := firstSeat(t, view, models.SeatAvailable, false)
	snapshot := view

	_, err = c.ToggleSeat(ctx, view.ID, seat)
	require.NoError(t, err)

	// The earlier view must still show the seat as available.
	for _, s := range snapshot.SeatMap.Seats {
		if s.ID == seat {
			assert.Equal(t, models.SeatAvailable, s.Status)
		}
	}
	assert.Empty(t, snapshot.SelectedSeats)
}

func TestViewSafeForConcurrentMarshal(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := c.CreateSession(testSessionRequest())

	view, err := c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)

	seat := firstSeat(t, view, models.SeatAvailable, false)

	// Handlers marshal views after the session lock is released; seat toggles
	// on the same session must not write into a map a marshal is reading.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := json.Marshal(view.SeatMap)
			assert.NoError(t, err)
		}
	}()

	for i := 0; i < 200; i++ {
		_, err := c.ToggleSeat(ctx, view.ID, seat)
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestGetSessionNotFound(t *testing.T) {
	c, _ := testController(t, time.Millisecond)

	_, err := c.GetSession("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSelectFlightRejectsInvalidFlight(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := c.CreateSession(testSessionRequest())

	bad := testFlight()
	bad.BaseFare = 0

	_, err := c.SelectFlight(ctx, view.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidFlight)

	got, err := c.GetSession(view.ID)
	require.NoError(t, err)
	assert.Equal(t, "flights", got.Step)
}

func TestSelectFlightOnlyFromFlightsStep(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := c.CreateSession(testSessionRequest())

	_, err := c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)

	_, err = c.SelectFlight(ctx, view.ID, testFlight())
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestToggleSeatErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := c.CreateSession(testSessionRequest())

	// No seat map yet at the flights step.
	_, err := c.ToggleSeat(ctx, view.ID, "3A")
	assert.ErrorIs(t, err, ErrIllegalTransition)

	view, err = c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)

	_, err = c.ToggleSeat(ctx, view.ID, "99Z")
	assert.ErrorIs(t, err, ErrUnknownSeat)

	unavailable := firstSeat(t, view, models.SeatUnavailable, false)
	_, err = c.ToggleSeat(ctx, view.ID, unavailable)
	assert.ErrorIs(t, err, ErrSeatUnavailable)
}

func TestToggleSeatReleases(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := c.CreateSession(testSessionRequest())

	view, err := c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)

	seat := firstSeat(t, view, models.SeatAvailable, false)

	view, err = c.ToggleSeat(ctx, view.ID, seat)
	require.NoError(t, err)
	assert.Equal(t, []string{seat}, view.SelectedSeats)

	view, err = c.ToggleSeat(ctx, view.ID, seat)
	require.NoError(t, err)
	assert.Empty(t, view.SelectedSeats)

	// Released seat is selectable again.
	view, err = c.ToggleSeat(ctx, view.ID, seat)
	require.NoError(t, err)
	assert.Equal(t, []string{seat}, view.SelectedSeats)
}

func TestProceedRequiresSelection(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := c.CreateSession(testSessionRequest())

	view, err := c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)

	_, err = c.ProceedToPayment(ctx, view.ID)
	assert.ErrorIs(t, err, ErrNoSeatsSelected)

	got, err := c.GetSession(view.ID)
	require.NoError(t, err)
	assert.Equal(t, "seats", got.Step)
}

func TestSubmitPaymentValidation(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := advanceToPayment(t, c)

	details := testPayment()
	details.Method = "cash"
	details.CardholderName = ""

	_, err := c.SubmitPayment(ctx, view.ID, details)

	var verr *PaymentValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		fields[i] = f.Field
	}
	assert.ElementsMatch(t, []string{"paymentMethod", "cardholderName"}, fields)

	got, err := c.GetSession(view.ID)
	require.NoError(t, err)
	assert.Equal(t, "payment", got.Step)
	assert.False(t, got.PaymentSubmitted)
}

func TestBackTransitions(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := advanceToPayment(t, c)

	view, err := c.Back(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "seats", view.Step)
	// Selection and seat map survive going back.
	assert.NotEmpty(t, view.SelectedSeats)
	assert.NotNil(t, view.SeatMap)

	view, err = c.Back(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "flights", view.Step)

	_, err = c.Back(ctx, view.ID)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestBackRefusedFromConfirmation(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := advanceToPayment(t, c)

	view, err := c.SubmitPayment(ctx, view.ID, testPayment())
	require.NoError(t, err)
	require.Equal(t, "confirmation", view.Step)

	_, err = c.Back(ctx, view.ID)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestResetClearsEverythingButSearch(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, time.Millisecond)
	view := advanceToPayment(t, c)

	view, err := c.SubmitPayment(ctx, view.ID, testPayment())
	require.NoError(t, err)

	view, err = c.Reset(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "flights", view.Step)
	assert.Nil(t, view.Flight)
	assert.Nil(t, view.SeatMap)
	assert.Empty(t, view.SelectedSeats)
	assert.Zero(t, view.TotalAmount)
	assert.False(t, view.PaymentSubmitted)
	assert.Nil(t, view.BookingID)

	require.NotNil(t, view.Search)
	assert.Equal(t, "Delhi", view.Search.Source)
	assert.Equal(t, "Mumbai", view.Search.Destination)

	// Reset is idempotent.
	again, err := c.Reset(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "flights", again.Step)

	// A reset session runs a second booking cleanly.
	view, err = c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)
	assert.Equal(t, "seats", view.Step)
}

func TestSubmitPaymentSerialized(t *testing.T) {
	ctx := context.Background()
	c, _ := testController(t, 100*time.Millisecond)
	view := advanceToPayment(t, c)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.SubmitPayment(ctx, view.ID, testPayment())
		assert.NoError(t, err)
	}()

	// Let the first submission enter the processor.
	time.Sleep(20 * time.Millisecond)

	_, err := c.SubmitPayment(ctx, view.ID, testPayment())
	assert.ErrorIs(t, err, ErrTransitionInFlight)

	_, err = c.Reset(ctx, view.ID)
	assert.ErrorIs(t, err, ErrTransitionInFlight)

	wg.Wait()

	got, err := c.GetSession(view.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmation", got.Step)
}

// failOnceStore fails the first Create and then delegates.
type failOnceStore struct {
	repository.BookingStore
	mu     sync.Mutex
	failed bool
}

func (s *failOnceStore) Create(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.failed {
		s.failed = true
		return errors.New("connection refused")
	}
	return s.BookingStore.Create(ctx, booking)
}

func TestSubmitPaymentRetriesAfterPersistFailure(t *testing.T) {
	ctx := context.Background()

	store := &failOnceStore{BookingStore: repository.NewMemBookingStore()}
	c := NewController(
		seatmap.NewWithSource(rand.NewSource(42)),
		payment.NewSimulatedProcessor(payment.Config{ProcessingDelay: time.Millisecond}),
		store,
		nil,
	)
	view := advanceToPayment(t, c)

	_, err := c.SubmitPayment(ctx, view.ID, testPayment())
	assert.ErrorIs(t, err, ErrPersistFailed)

	// Session stays at payment with entered state intact.
	got, err := c.GetSession(view.ID)
	require.NoError(t, err)
	assert.Equal(t, "payment", got.Step)
	assert.True(t, got.PaymentSubmitted)
	assert.NotEmpty(t, got.SelectedSeats)
	assert.NotZero(t, got.TotalAmount)

	// Retry in place succeeds.
	got, err = c.SubmitPayment(ctx, view.ID, testPayment())
	require.NoError(t, err)
	assert.Equal(t, "confirmation", got.Step)
	assert.NotNil(t, got.BookingID)
}

func TestSubmitPaymentHonorsCancellation(t *testing.T) {
	c, _ := testController(t, time.Minute)
	view := advanceToPayment(t, c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.SubmitPayment(ctx, view.ID, testPayment())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The in-flight flag is released so the session is usable again.
	got, err := c.GetSession(view.ID)
	require.NoError(t, err)
	assert.Equal(t, "payment", got.Step)
}

func advanceToPayment(t *testing.T, c *Controller) *models.SessionView {
	t.Helper()
	ctx := context.Background()

	view := c.CreateSession(testSessionRequest())

	view, err := c.SelectFlight(ctx, view.ID, testFlight())
	require.NoError(t, err)

	seat := firstSeat(t, view, models.SeatAvailable, false)
	view, err = c.ToggleSeat(ctx, view.ID, seat)
	require.NoError(t, err)

	view, err = c.ProceedToPayment(ctx, view.ID)
	require.NoError(t, err)
	require.Equal(t, "payment", view.Step)

	return view
}
