package workflow

// Step is the workflow position of a booking session. The canonical flow is
// linear and forward-only: flights → seats → payment → confirmation.
type Step string

const (
	StepFlights      Step = "flights"
	StepSeats        Step = "seats"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// Prev returns the immediate predecessor of s. Only seats and payment expose
// a back transition: flights has no predecessor, and once a booking is
// persisted at confirmation the only exit is a reset.
func (s Step) Prev() (Step, bool) {
	switch s {
	case StepSeats:
		return StepFlights, true
	case StepPayment:
		return StepSeats, true
	default:
		return "", false
	}
}
