package flights

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := NewWithSource(rand.NewSource(1))
	date := time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC)

	results := g.Generate("New Delhi", "Dubai", date)
	require.Len(t, results, len(Airlines)*5)

	numberRe := regexp.MustCompile(`^[A-Z]+\d{4}$`)
	durationRe := regexp.MustCompile(`^\d{1,2}h \d{1,2}m$`)

	perAirline := make(map[string]int)
	for _, f := range results {
		perAirline[f.Airline]++

		assert.Equal(t, "New Delhi", f.Source)
		assert.Equal(t, "Dubai", f.Destination)
		assert.Regexp(t, numberRe, f.FlightNumber)
		assert.Regexp(t, durationRe, f.Duration)
		assert.GreaterOrEqual(t, f.BaseFare, int64(5000))
		assert.Less(t, f.BaseFare, int64(25000))
		assert.True(t, f.ArrivalTime.After(f.DepartureTime))
		assert.False(t, f.DepartureTime.Before(date))
	}

	for _, airline := range Airlines {
		assert.Equal(t, 5, perAirline[airline])
	}
}

func TestGenerateFlightNumberPrefix(t *testing.T) {
	g := NewWithSource(rand.NewSource(2))
	results := g.Generate("Mumbai", "London", time.Now())

	for _, f := range results {
		switch f.Airline {
		case "Air India":
			assert.Regexp(t, `^AIR\d{4}$`, f.FlightNumber)
		case "Indigo":
			assert.Regexp(t, `^INDIGO\d{4}$`, f.FlightNumber)
		case "Etihad Airways":
			assert.Regexp(t, `^ETIHAD\d{4}$`, f.FlightNumber)
		}
	}
}
