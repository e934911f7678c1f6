package repository

import (
	"context"
	"sync"

	"skyfare/internal/models"
)

// Map-backed stores. Used when no database is configured, and by the handler
// and workflow test suites. Semantics mirror the SQL implementations,
// including nil-nil for not-found.

type MemBookingStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]models.Booking
}

func NewMemBookingStore() *MemBookingStore {
	return &MemBookingStore{nextID: 1, items: make(map[int64]models.Booking)}
}

func (s *MemBookingStore) Create(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking.ID = s.nextID
	s.nextID++
	s.items[booking.ID] = *booking
	return nil
}

func (s *MemBookingStore) GetByID(_ context.Context, id int64) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (s *MemBookingStore) GetByUserID(_ context.Context, userID int64) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []models.Booking
	for id := int64(1); id < s.nextID; id++ {
		booking, ok := s.items[id]
		if ok && booking.UserID != nil && *booking.UserID == userID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

type MemUserStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]models.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{nextID: 1, items: make(map[int64]models.User)}
}

func (s *MemUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID
	s.nextID++
	s.items[user.ID] = *user
	return nil
}

func (s *MemUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.items {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

type MemSearchStore struct {
	mu     sync.Mutex
	nextID int64
	items  []models.FlightSearch
}

func NewMemSearchStore() *MemSearchStore {
	return &MemSearchStore{nextID: 1}
}

func (s *MemSearchStore) Record(_ context.Context, search *models.FlightSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	search.ID = s.nextID
	s.nextID++
	s.items = append(s.items, *search)
	return nil
}

// Recorded returns a copy of the search history, for tests.
func (s *MemSearchStore) Recorded() []models.FlightSearch {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FlightSearch, len(s.items))
	copy(out, s.items)
	return out
}
