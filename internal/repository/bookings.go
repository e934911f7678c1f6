package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"skyfare/internal/database"
	"skyfare/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	passengers, err := json.Marshal(booking.Passengers)
	if err != nil {
		return fmt.Errorf("failed to marshal passengers: %w", err)
	}

	query := `
		INSERT INTO bookings (source, destination, departure_date, passengers, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		booking.Source,
		booking.Destination,
		booking.DepartureDate,
		passengers,
		booking.UserID,
		booking.CreatedAt,
	).Scan(&booking.ID)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `
		SELECT id, source, destination, departure_date, passengers, user_id, created_at
		FROM bookings
		WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Booking, error) {
	query := `
		SELECT id, source, destination, departure_date, passengers, user_id, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var passengers []byte

	err := row.Scan(
		&booking.ID,
		&booking.Source,
		&booking.Destination,
		&booking.DepartureDate,
		&passengers,
		&booking.UserID,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(passengers, &booking.Passengers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal passengers: %w", err)
	}
	return booking, nil
}
