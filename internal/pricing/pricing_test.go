package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatRow(t *testing.T) {
	tests := []struct {
		seatID  string
		row     int
		wantErr bool
	}{
		{"1A", 1, false},
		{"2D", 2, false},
		{"3C", 3, false},
		{"20F", 20, false},
		{"12B", 12, false},
		{"A1", 0, true},
		{"", 0, true},
		{"0A", 0, true},
	}

	for _, tt := range tests {
		row, err := SeatRow(tt.seatID)
		if tt.wantErr {
			assert.Error(t, err, "seat %q", tt.seatID)
			continue
		}
		require.NoError(t, err, "seat %q", tt.seatID)
		assert.Equal(t, tt.row, row, "seat %q", tt.seatID)
	}
}

func TestTotalScenario(t *testing.T) {
	// 1A is business (3×5000), 3B and 3C are economy (5000 each).
	total, err := Total(5000, []string{"1A", "3B", "3C"})
	require.NoError(t, err)
	assert.Equal(t, int64(25000), total)
}

func TestTotalEmptySelection(t *testing.T) {
	total, err := Total(5000, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestTotalFormula(t *testing.T) {
	fares := []int64{1, 499, 5000, 24999}
	business := []string{"1A", "1B", "2C"}
	economy := []string{"3A", "10D", "20F"}

	for _, fare := range fares {
		for b := 0; b <= len(business); b++ {
			for e := 0; e <= len(economy); e++ {
				seats := append(append([]string{}, business[:b]...), economy[:e]...)
				total, err := Total(fare, seats)
				require.NoError(t, err)
				assert.Equal(t, int64(b)*fare*BusinessMultiplier+int64(e)*fare, total,
					"fare=%d business=%d economy=%d", fare, b, e)
			}
		}
	}
}

func TestTotalRejectsBadInput(t *testing.T) {
	_, err := Total(0, []string{"1A"})
	assert.Error(t, err)

	_, err = Total(-100, []string{"1A"})
	assert.Error(t, err)

	_, err = Total(5000, []string{"XX"})
	assert.Error(t, err)
}
