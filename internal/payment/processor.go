// Package payment simulates the payment gateway. The simulated processor
// never declines: after a fixed processing delay every submission succeeds.
// The Processor interface is the seam where a real gateway client would plug
// in without changing the workflow controller.
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skyfare/internal/models"
)

type Config struct {
	ProcessingDelay time.Duration
}

// Receipt is the processor's settlement result.
type Receipt struct {
	TransactionID string               `json:"transactionId"`
	Method        models.PaymentMethod `json:"method"`
	Amount        int64                `json:"amount"`
	ProcessedAt   time.Time            `json:"processedAt"`
}

// Processor settles a payment. Process blocks for the duration of the
// gateway interaction and honors context cancellation.
type Processor interface {
	Process(ctx context.Context, details *models.PaymentDetails, amount int64) (*Receipt, error)
}

type SimulatedProcessor struct {
	delay time.Duration
}

func NewSimulatedProcessor(cfg Config) *SimulatedProcessor {
	return &SimulatedProcessor{delay: cfg.ProcessingDelay}
}

// Process waits out the configured delay and approves the payment. A
// cancelled context aborts the attempt; a new attempt simply restarts the
// delay.
func (p *SimulatedProcessor) Process(ctx context.Context, details *models.PaymentDetails, amount int64) (*Receipt, error) {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return &Receipt{
		TransactionID: uuid.New().String(),
		Method:        details.Method,
		Amount:        amount,
		ProcessedAt:   time.Now().UTC(),
	}, nil
}
