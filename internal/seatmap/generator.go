// Package seatmap generates the randomized per-session seat inventory for a
// flight: rows 1-2 are business class with 4 seats in a 2-2 layout, rows 3-20
// are economy with 6 seats in a 3-3 layout.
package seatmap

import (
	"math/rand"
	"strconv"
	"time"

	"skyfare/internal/models"
)

const (
	TotalRows           = 20
	BusinessRows        = 2
	BusinessSeatsPerRow = 4
	EconomySeatsPerRow  = 6

	// TotalSeats = 2×4 business + 18×6 economy.
	TotalSeats = BusinessRows*BusinessSeatsPerRow + (TotalRows-BusinessRows)*EconomySeatsPerRow

	businessUnavailableProb = 0.3
	economyUnavailableProb  = 0.25
)

// Generator produces seat maps from a random source. The zero availability
// draws are independent per seat, so two maps for the same flight will not
// agree; that matches the session-local inventory model.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator backed by a time-seeded source.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a generator backed by the given source. Tests pass a
// fixed seed here to pin outputs.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate builds a fresh seat map for the given flight. A map with zero
// available seats is legal and intentionally not prevented.
func (g *Generator) Generate(flightID int64) *models.SeatMap {
	seats := make([]models.Seat, 0, TotalSeats)

	for row := 1; row <= TotalRows; row++ {
		class := classForRow(row)
		perRow := EconomySeatsPerRow
		unavailableProb := economyUnavailableProb
		if class == models.ClassBusiness {
			perRow = BusinessSeatsPerRow
			unavailableProb = businessUnavailableProb
		}

		for seat := 0; seat < perRow; seat++ {
			letter := string(rune('A' + seat))
			status := models.SeatAvailable
			if g.rng.Float64() < unavailableProb {
				status = models.SeatUnavailable
			}

			seats = append(seats, models.Seat{
				ID:     seatID(row, letter),
				Row:    row,
				Letter: letter,
				Class:  class,
				Status: status,
			})
		}
	}

	return &models.SeatMap{FlightID: flightID, Seats: seats}
}

func classForRow(row int) models.CabinClass {
	if row <= BusinessRows {
		return models.ClassBusiness
	}
	return models.ClassEconomy
}

func seatID(row int, letter string) string {
	// "3C" style identifiers, matching what the pricing rules parse.
	return strconv.Itoa(row) + letter
}
