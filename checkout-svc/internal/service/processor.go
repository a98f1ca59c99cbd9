package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"nightpay/checkout-svc/internal/domain"
	"nightpay/money"
)

var (
	ErrAmountMismatch     = errors.New("amount does not match the catalog price")
	ErrAlreadySettled     = errors.New("order already settled")
	ErrChargeInFlight     = errors.New("another charge is in flight for this order")
	ErrTokenNotFound      = errors.New("payment token not found or already used")
	ErrGatewayUnavailable = errors.New("settlement gateway unavailable")
	ErrPaymentCancelled   = errors.New("payment cancelled")
)

// PaymentProcessor runs one settlement attempt end to end: sync
// preconditions, idempotency guard, per-order serialization, gateway call,
// result persistence and event publish.
type PaymentProcessor struct {
	catalog   CatalogInterface
	repo      PaymentRepository
	vault     TokenVault
	locker    OrderLocker
	gateway   SettlementGateway
	publisher PaymentPublisher
	passes    PassGenerator
}

func NewPaymentProcessor(
	catalog CatalogInterface,
	repo PaymentRepository,
	vault TokenVault,
	locker OrderLocker,
	gateway SettlementGateway,
	publisher PaymentPublisher,
	passes PassGenerator,
) *PaymentProcessor {
	return &PaymentProcessor{
		catalog:   catalog,
		repo:      repo,
		vault:     vault,
		locker:    locker,
		gateway:   gateway,
		publisher: publisher,
		passes:    passes,
	}
}

// Charge settles amount against the order's catalog tier using a vault token.
//
// All local validation happens before any remote work, so a doomed request
// never pays gateway latency. A prior Succeeded result for the order is
// replayed unchanged with ErrAlreadySettled instead of charging twice.
// Cancellation before the gateway resolves persists nothing and keeps the
// token usable; a terminal outcome (success, decline, pending) consumes it.
func (p *PaymentProcessor) Charge(ctx context.Context, orderID, tierID, tokenID string, amount money.Amount) (*domain.PaymentResult, error) {
	tier, err := p.catalog.Tier(tierID)
	if err != nil {
		return nil, err
	}

	price, err := tier.Price()
	if err != nil {
		return nil, err
	}
	if !amount.Equal(price) {
		return nil, fmt.Errorf("%w: got %s, catalog says %s", ErrAmountMismatch, amount, price)
	}

	if prior, err := p.repo.SettledResult(orderID); err != nil {
		return nil, fmt.Errorf("failed to check prior settlement: %w", err)
	} else if prior != nil {
		return prior, ErrAlreadySettled
	}

	acquired, err := p.locker.AcquireOrderLock(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire order lock: %w", err)
	}
	if !acquired {
		return nil, ErrChargeInFlight
	}
	defer func() {
		if err := p.locker.ReleaseOrderLock(context.WithoutCancel(ctx), orderID); err != nil {
			log.Printf("Warning: failed to release order lock for %s: %v", orderID, err)
		}
	}()

	// Re-check under the lock: a racing attempt may have settled the order
	// between the guard above and lock acquisition.
	if prior, err := p.repo.SettledResult(orderID); err != nil {
		return nil, fmt.Errorf("failed to check prior settlement: %w", err)
	} else if prior != nil {
		return prior, ErrAlreadySettled
	}

	token, err := p.vault.Token(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	auth, err := p.gateway.Authorize(ctx, *token, amount)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentCancelled, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	result := &domain.PaymentResult{
		ID:               "pay_" + uuid.NewString(),
		OrderID:          orderID,
		TokenID:          tokenID,
		TransactionID:    auth.TransactionID,
		AmountMinorUnits: amount.MinorUnits(),
		Currency:         amount.Currency(),
		Status:           auth.Status,
		Reason:           auth.Reason,
		CreatedAt:        time.Now().UTC(),
	}

	// Persist before spending the token: if the row never lands, the retry
	// must still find the settled record or be able to re-present the token.
	if err := p.repo.InsertResult(result); err != nil {
		return nil, fmt.Errorf("failed to persist payment result: %w", err)
	}

	// Terminal outcome recorded: the token is spent no matter which way the
	// gateway decided.
	if err := p.vault.ConsumeToken(context.WithoutCancel(ctx), tokenID); err != nil {
		log.Printf("Warning: failed to consume token %s: %v", tokenID, err)
	}

	if result.Status == domain.StatusSucceeded && p.passes != nil {
		if png, err := p.passes.Generate(orderID); err != nil {
			log.Printf("Warning: failed to generate entry pass for %s: %v", orderID, err)
		} else if err := p.repo.SaveEntryPass(orderID, png); err != nil {
			log.Printf("Warning: failed to store entry pass for %s: %v", orderID, err)
		}
	}

	if p.publisher != nil {
		_ = p.publisher.PublishPayment(context.WithoutCancel(ctx), domain.PaymentEvent{
			Type:             domain.EventPaymentSettled,
			OrderID:          orderID,
			VenueID:          tier.VenueID,
			TransactionID:    result.TransactionID,
			AmountMinorUnits: result.AmountMinorUnits,
			Currency:         result.Currency,
			Status:           string(result.Status),
			Timestamp:        result.CreatedAt,
		})
	}

	return result, nil
}

// Result returns the stored settlement record for an order.
func (p *PaymentProcessor) Result(ctx context.Context, orderID string) (*domain.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.repo.ResultForOrder(orderID)
}

// EntryPass serves the stored pass, regenerating it when the settled order
// has none on file yet.
func (p *PaymentProcessor) EntryPass(ctx context.Context, orderID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := p.repo.EntryPass(orderID)
	if err != nil {
		return nil, err
	}
	if len(png) == 0 && p.passes != nil {
		if regenerated, err := p.passes.Generate(orderID); err == nil {
			if err := p.repo.SaveEntryPass(orderID, regenerated); err != nil {
				log.Printf("Warning: failed to cache regenerated pass for %s: %v", orderID, err)
			}
			return regenerated, nil
		}
	}
	return png, nil
}
