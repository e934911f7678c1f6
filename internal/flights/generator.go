// Package flights produces randomized search results, the demo's stand-in for
// a real inventory system. Five flights per airline, with number, duration and
// fare drawn from fixed ranges.
package flights

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"skyfare/internal/models"
)

// Airlines served by the demo inventory.
var Airlines = []string{"Air India", "Indigo", "Etihad Airways"}

// DepartureCities and ArrivalCities are the route endpoints offered by the
// search form.
var DepartureCities = []string{
	"New Delhi", "Mumbai", "Bangalore", "Chennai", "Kolkata", "Hyderabad",
	"Ahmedabad", "Pune", "Jaipur", "Lucknow", "Kochi", "Goa",
}

var ArrivalCities = []string{
	"London", "Dubai", "Singapore", "New York", "Paris", "Tokyo",
	"Sydney", "Hong Kong", "Toronto", "Bangkok", "Kuala Lumpur", "San Francisco",
}

const (
	flightsPerAirline = 5

	minFare   = 5000
	fareRange = 20000
)

// Generator builds flight result sets from a random source.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator backed by a time-seeded source.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a generator with a caller-supplied source, so tests
// can pin outputs.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate returns five flights per airline for the route, departing on the
// given date.
func (g *Generator) Generate(source, destination string, departureDate time.Time) []models.Flight {
	results := make([]models.Flight, 0, len(Airlines)*flightsPerAirline)

	id := int64(1)
	for _, airline := range Airlines {
		prefix := strings.ToUpper(strings.Fields(airline)[0])

		for i := 0; i < flightsPerAirline; i++ {
			durationHours := 2 + g.rng.Intn(10)
			durationMinutes := g.rng.Intn(60)
			duration := time.Duration(durationHours)*time.Hour +
				time.Duration(durationMinutes)*time.Minute

			departure := departureDate.Add(
				time.Duration(g.rng.Intn(24))*time.Hour +
					time.Duration(g.rng.Intn(60))*time.Minute)

			results = append(results, models.Flight{
				ID:            id,
				Airline:       airline,
				FlightNumber:  fmt.Sprintf("%s%d", prefix, 1000+g.rng.Intn(9000)),
				Source:        source,
				Destination:   destination,
				DepartureTime: departure,
				ArrivalTime:   departure.Add(duration),
				Duration:      fmt.Sprintf("%dh %dm", durationHours, durationMinutes),
				BaseFare:      int64(minFare + g.rng.Intn(fareRange)),
			})
			id++
		}
	}

	return results
}
