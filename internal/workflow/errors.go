package workflow

import (
	"errors"
	"fmt"
	"strings"

	"skyfare/internal/models"
)

var (
	ErrSessionNotFound    = errors.New("booking session not found")
	ErrIllegalTransition  = errors.New("transition not allowed from current step")
	ErrInvalidFlight      = errors.New("selected flight is invalid")
	ErrNoSeatsSelected    = errors.New("at least one seat must be selected")
	ErrUnknownSeat        = errors.New("seat does not exist in this seat map")
	ErrSeatUnavailable    = errors.New("seat is unavailable")
	ErrTransitionInFlight = errors.New("another transition is already in progress")

	// ErrPersistFailed wraps storage errors raised while committing the
	// booking at confirmation. The session stays in the payment step with all
	// entered state intact so the client can retry in place.
	ErrPersistFailed = errors.New("failed to persist booking")
)

// PaymentValidationError carries the field-level failures of a payment
// submission.
type PaymentValidationError struct {
	Fields []models.ValidationError
}

func (e *PaymentValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("payment details invalid: %s", strings.Join(names, ", "))
}
