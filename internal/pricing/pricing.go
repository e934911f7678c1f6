// Package pricing derives a session's total from its selected seats and the
// flight's base fare. Business seats (row 1-2) cost three times the base fare,
// economy seats cost the base fare. No taxes, fees or currency conversion.
package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// BusinessMultiplier is the fare factor for business-class seats.
const BusinessMultiplier = 3

const businessRowMax = 2

// SeatRow extracts the row number from a seat identifier such as "12C". The
// row is the leading run of digits.
func SeatRow(seatID string) (int, error) {
	end := 0
	for end < len(seatID) && seatID[end] >= '0' && seatID[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("seat id %q has no row number", seatID)
	}

	row, err := strconv.Atoi(seatID[:end])
	if err != nil {
		return 0, fmt.Errorf("seat id %q: %w", seatID, err)
	}
	if row < 1 {
		return 0, fmt.Errorf("seat id %q: row must be positive", seatID)
	}
	return row, nil
}

// IsBusiness reports whether the seat sits in a business-class row.
func IsBusiness(seatID string) (bool, error) {
	row, err := SeatRow(seatID)
	if err != nil {
		return false, err
	}
	return row <= businessRowMax, nil
}

// Total computes the price of the selected seats at the given base fare.
// An empty selection totals zero; the workflow refuses to proceed in that
// state, but the calculation itself stays well defined.
func Total(baseFare int64, seatIDs []string) (int64, error) {
	if baseFare <= 0 {
		return 0, fmt.Errorf("base fare must be positive, got %d", baseFare)
	}

	var total int64
	for _, id := range seatIDs {
		business, err := IsBusiness(strings.TrimSpace(id))
		if err != nil {
			return 0, err
		}
		if business {
			total += baseFare * BusinessMultiplier
		} else {
			total += baseFare
		}
	}
	return total, nil
}
