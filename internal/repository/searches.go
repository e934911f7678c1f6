package repository

import (
	"context"

	"skyfare/internal/database"
	"skyfare/internal/models"
)

type SearchRepository struct {
	db *database.DB
}

func NewSearchRepository(db *database.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

func (r *SearchRepository) Record(ctx context.Context, search *models.FlightSearch) error {
	query := `
		INSERT INTO flight_searches (source, destination, departure_date, adults, children, infants, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		search.Source,
		search.Destination,
		search.DepartureDate,
		search.Passengers.Adults,
		search.Passengers.Children,
		search.Passengers.Infants,
		search.CreatedAt,
	).Scan(&search.ID)
}
