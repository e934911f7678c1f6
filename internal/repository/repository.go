package repository

import (
	"context"

	"skyfare/internal/database"
	"skyfare/internal/models"
)

// BookingStore persists booking records. Records are append-only: there are
// no update or delete operations. Not-found is reported as (nil, nil).
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.Booking, error)
}

// UserStore holds registered users; bookings reference them by id.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SearchStore records flight-search history.
type SearchStore interface {
	Record(ctx context.Context, search *models.FlightSearch) error
}

type Stores struct {
	Bookings BookingStore
	Users    UserStore
	Searches SearchStore
}

// NewPostgresStores wires the SQL-backed implementations.
func NewPostgresStores(db *database.DB) *Stores {
	return &Stores{
		Bookings: NewBookingRepository(db),
		Users:    NewUserRepository(db),
		Searches: NewSearchRepository(db),
	}
}

// NewMemoryStores wires the map-backed implementations, used when no database
// is configured and by the test suites.
func NewMemoryStores() *Stores {
	return &Stores{
		Bookings: NewMemBookingStore(),
		Users:    NewMemUserStore(),
		Searches: NewMemSearchStore(),
	}
}
