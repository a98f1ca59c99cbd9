package service

import (
	"context"

	"nightpay/checkout-svc/internal/domain"
	"nightpay/money"
)

type TokenizerInterface interface {
	Tokenize(ctx context.Context, card *domain.Card) (*domain.PaymentToken, error)
}

type CatalogInterface interface {
	TiersForVenue(venueID string) []domain.PricingTier
	Tier(id string) (domain.PricingTier, error)
	Refresh(ctx context.Context) error
}

type ProcessorInterface interface {
	Charge(ctx context.Context, orderID, tierID, tokenID string, amount money.Amount) (*domain.PaymentResult, error)
	Result(ctx context.Context, orderID string) (*domain.PaymentResult, error)
	EntryPass(ctx context.Context, orderID string) ([]byte, error)
}

// TokenVault stores issued tokens until they are consumed by a terminal
// settlement outcome or expire.
type TokenVault interface {
	SaveToken(ctx context.Context, token domain.PaymentToken) error
	Token(ctx context.Context, id string) (*domain.PaymentToken, error)
	ConsumeToken(ctx context.Context, id string) error
}

// OrderLocker serializes charge attempts so at most one is in flight per
// order id at a time.
type OrderLocker interface {
	AcquireOrderLock(ctx context.Context, orderID string) (bool, error)
	ReleaseOrderLock(ctx context.Context, orderID string) error
}

type PaymentRepository interface {
	ListTiers() ([]domain.PricingTier, error)
	InsertResult(result *domain.PaymentResult) error
	SettledResult(orderID string) (*domain.PaymentResult, error)
	ResultForOrder(orderID string) (*domain.PaymentResult, error)
	SaveEntryPass(orderID string, png []byte) error
	EntryPass(orderID string) ([]byte, error)
}

// SettlementGateway is the remote authorization boundary. Authorize blocks
// until the gateway resolves or ctx is cancelled.
type SettlementGateway interface {
	Authorize(ctx context.Context, token domain.PaymentToken, amount money.Amount) (*Authorization, error)
}

// Authorization is a terminal gateway outcome.
type Authorization struct {
	TransactionID string
	Status        domain.PaymentStatus
	Reason        string
}

type PaymentPublisher interface {
	PublishPayment(ctx context.Context, event domain.PaymentEvent) error
}

// PassGenerator renders the scannable entry pass for a settled order.
type PassGenerator interface {
	Generate(orderID string) ([]byte, error)
}

var (
	_ TokenizerInterface = (*Tokenizer)(nil)
	_ CatalogInterface   = (*CatalogService)(nil)
	_ ProcessorInterface = (*PaymentProcessor)(nil)
)
