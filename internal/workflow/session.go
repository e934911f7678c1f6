package workflow

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"skyfare/internal/models"
)

// Session is the transient state of one user's in-progress booking, created
// when a search begins and torn down on reset. Never persisted mid-flow; the
// only durable artifact is the Booking written at confirmation.
type Session struct {
	ID      string
	Step    Step
	Search  *models.FlightSearch
	UserID  *int64
	Flight  *models.Flight
	SeatMap *models.SeatMap

	// selected keeps seat ids in selection order.
	selected    []string
	TotalAmount int64
	Payment     *models.PaymentDetails
	BookingID   *int64

	CreatedAt time.Time
	UpdatedAt time.Time

	// mu serializes transitions for this session; inFlight marks a transition
	// whose slow phase (payment processing) runs outside the lock.
	mu       sync.Mutex
	inFlight bool
}

func newSession(req *models.CreateSessionRequest) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:   uuid.New().String(),
		Step: StepFlights,
		Search: &models.FlightSearch{
			Source:        req.Source,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
			Passengers:    req.Passengers,
		},
		UserID:    req.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// seat returns a pointer into the seat map, or nil.
func (s *Session) seat(seatID string) *models.Seat {
	if s.SeatMap == nil {
		return nil
	}
	for i := range s.SeatMap.Seats {
		if s.SeatMap.Seats[i].ID == seatID {
			return &s.SeatMap.Seats[i]
		}
	}
	return nil
}

func (s *Session) deselect(seatID string) {
	for i, id := range s.selected {
		if id == seatID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
}

// view snapshots the session for the presentation layer. Callers must hold mu.
// The seat map is deep-copied: handlers marshal the view after mu is released,
// so it must not share seats with the live session.
func (s *Session) view() *models.SessionView {
	selected := make([]string, len(s.selected))
	copy(selected, s.selected)

	var seatMap *models.SeatMap
	if s.SeatMap != nil {
		seats := make([]models.Seat, len(s.SeatMap.Seats))
		copy(seats, s.SeatMap.Seats)
		seatMap = &models.SeatMap{FlightID: s.SeatMap.FlightID, Seats: seats}
	}

	return &models.SessionView{
		ID:               s.ID,
		Step:             string(s.Step),
		Search:           s.Search,
		Flight:           s.Flight,
		SeatMap:          seatMap,
		SelectedSeats:    selected,
		TotalAmount:      s.TotalAmount,
		PaymentSubmitted: s.Payment != nil,
		BookingID:        s.BookingID,
	}
}

// Store is the in-memory session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Create(req *models.CreateSessionRequest) *Session {
	session := newSession(req)

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()

	return session
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	session, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
