package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"nightpay/checkout-svc/internal/domain"
	"nightpay/money"
)

// SandboxGateway stands in for a real acquirer. It models the network round
// trip with a latency timer so callers exercise the same suspension and
// cancellation path as production, and it picks outcomes from the token's
// last four digits the way acquirer test cards do.
type SandboxGateway struct {
	Latency time.Duration
}

func NewSandboxGateway(latency time.Duration) *SandboxGateway {
	if latency <= 0 {
		latency = 150 * time.Millisecond
	}
	return &SandboxGateway{Latency: latency}
}

func (g *SandboxGateway) Authorize(ctx context.Context, token domain.PaymentToken, amount money.Amount) (*Authorization, error) {
	timer := time.NewTimer(g.Latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	switch token.Last4 {
	case "0002":
		return &Authorization{
			TransactionID: newTransactionID(),
			Status:        domain.StatusFailed,
			Reason:        "card_declined",
		}, nil
	case "9995":
		return &Authorization{
			TransactionID: newTransactionID(),
			Status:        domain.StatusFailed,
			Reason:        "insufficient_funds",
		}, nil
	case "3220":
		return &Authorization{
			TransactionID: newTransactionID(),
			Status:        domain.StatusPending,
		}, nil
	case "0119":
		return nil, errors.New("acquirer connection reset")
	default:
		return &Authorization{
			TransactionID: newTransactionID(),
			Status:        domain.StatusSucceeded,
		}, nil
	}
}

func newTransactionID() string {
	return "txn_" + uuid.NewString()
}

var _ SettlementGateway = (*SandboxGateway)(nil)
