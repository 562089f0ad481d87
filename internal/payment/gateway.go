// Package payment abstracts the mobile-money gateway used to settle
// bookings. The rest of the application talks to the Gateway interface
// only, so a real provider integration (M-Pesa, Airtel Money, Orange
// Money, Afrimoney) can replace the simulator without touching the
// settlement flow.
package payment

import "context"

// Outcome classifies a charge attempt.
type Outcome int

const (
	// Success means the subscriber was charged.
	Success Outcome = iota
	// Failure means the charge was rejected (insufficient balance,
	// wrong PIN, subscriber unreachable).
	Failure
	// Pending means the provider accepted the request but has not
	// settled it yet. The simulator never returns it; real providers
	// confirm asynchronously.
	Pending
)

// Result is what a gateway reports back for one charge attempt.
type Result struct {
	Outcome Outcome
	// ProviderRef is the provider-side transaction identifier, when
	// the provider returns one.
	ProviderRef string
	// Reason carries the provider's failure message for Failure results.
	Reason string
}

// Gateway initiates mobile-money charges. Charge blocks until the
// provider answers or ctx is done.
type Gateway interface {
	Charge(ctx context.Context, method, phoneNumber string, amountCents int64, transactionRef string) (Result, error)
}

// SimulatedGateway approves every charge immediately. It stands in for
// a real provider in development and tests.
type SimulatedGateway struct{}

// NewSimulatedGateway returns a gateway that always succeeds.
func NewSimulatedGateway() *SimulatedGateway { return &SimulatedGateway{} }

// Charge reports success for any well-formed request.
func (g *SimulatedGateway) Charge(_ context.Context, _, _ string, _ int64, transactionRef string) (Result, error) {
	return Result{Outcome: Success, ProviderRef: transactionRef}, nil
}
