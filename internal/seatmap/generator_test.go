package seatmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfare/internal/models"
)

func TestGenerateLayout(t *testing.T) {
	g := NewWithSource(rand.NewSource(1))
	sm := g.Generate(42)

	require.Len(t, sm.Seats, TotalSeats)
	assert.Equal(t, int64(42), sm.FlightID)

	var business, economy int
	seen := make(map[string]bool)
	for _, seat := range sm.Seats {
		assert.False(t, seen[seat.ID], "duplicate seat id %s", seat.ID)
		seen[seat.ID] = true

		switch seat.Class {
		case models.ClassBusiness:
			business++
			assert.LessOrEqual(t, seat.Row, BusinessRows)
			assert.Contains(t, []string{"A", "B", "C", "D"}, seat.Letter)
		case models.ClassEconomy:
			economy++
			assert.Greater(t, seat.Row, BusinessRows)
			assert.Contains(t, []string{"A", "B", "C", "D", "E", "F"}, seat.Letter)
		default:
			t.Fatalf("unexpected cabin class %q", seat.Class)
		}
	}

	assert.Equal(t, 8, business)
	assert.Equal(t, 108, economy)
}

func TestGenerateStatuses(t *testing.T) {
	g := NewWithSource(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		sm := g.Generate(int64(i))
		for _, seat := range sm.Seats {
			assert.Contains(t,
				[]models.SeatStatus{models.SeatAvailable, models.SeatUnavailable},
				seat.Status)
		}
	}
}

func TestGenerateDeterministicWithFixedSeed(t *testing.T) {
	a := NewWithSource(rand.NewSource(99)).Generate(1)
	b := NewWithSource(rand.NewSource(99)).Generate(1)

	assert.Equal(t, a, b)
}

func TestGenerateIndependentAcrossCalls(t *testing.T) {
	// Two draws from the same generator are allowed to differ; with 116 seats
	// the chance of two identical maps is negligible.
	g := NewWithSource(rand.NewSource(3))
	a := g.Generate(1)
	b := g.Generate(1)

	assert.NotEqual(t, a, b)
}
