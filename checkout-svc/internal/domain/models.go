package domain

import (
	"time"

	"nightpay/money"
)

type CardBrand string

const (
	BrandVisa       CardBrand = "visa"
	BrandMastercard CardBrand = "mastercard"
	BrandAmex       CardBrand = "amex"
	BrandDiscover   CardBrand = "discover"
	BrandUnknown    CardBrand = "unknown"
)

// Card is input-only. It exists transiently during tokenization and must be
// wiped before the call that received it returns.
type Card struct {
	Number     string `json:"number"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
	CVC        string `json:"cvc"`
	HolderName string `json:"holder_name"`
}

// Wipe clears the sensitive fields in place.
func (c *Card) Wipe() {
	c.Number = ""
	c.CVC = ""
	c.HolderName = ""
	c.ExpMonth = 0
	c.ExpYear = 0
}

// PaymentToken is the safe-to-retain result of tokenization. It carries no
// raw card data and is consumed by the first terminal settlement outcome.
type PaymentToken struct {
	ID        string    `json:"token"`
	Brand     CardBrand `json:"brand"`
	Last4     string    `json:"last4"`
	ExpMonth  int       `json:"expiry_month"`
	ExpYear   int       `json:"expiry_year"`
	CreatedAt time.Time `json:"created_at"`
}

// PricingTier is an immutable catalog entry. Prices are stored as integer
// minor units to keep the database exact.
type PricingTier struct {
	ID              string    `json:"id"`
	VenueID         string    `json:"venue_id"`
	Name            string    `json:"name"`
	PriceMinorUnits int64     `json:"price_minor_units"`
	Currency        string    `json:"currency"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

// Price converts the stored minor units back into an Amount.
func (t PricingTier) Price() (money.Amount, error) {
	return money.FromMinorUnits(t.PriceMinorUnits, t.Currency)
}

type PaymentStatus string

const (
	StatusSucceeded PaymentStatus = "success"
	StatusFailed    PaymentStatus = "failure"
	// StatusPending is terminal here: the upstream client has no resolution
	// channel, so a pending settlement is recorded and left as-is.
	StatusPending PaymentStatus = "pending"
)

// PaymentResult is the single immutable record of one settlement attempt.
type PaymentResult struct {
	ID               string        `json:"result_id"`
	OrderID          string        `json:"order_id"`
	TokenID          string        `json:"token"`
	TransactionID    string        `json:"transaction_id"`
	AmountMinorUnits int64         `json:"amount_minor_units"`
	Currency         string        `json:"currency"`
	Status           PaymentStatus `json:"status"`
	Reason           string        `json:"reason,omitempty"`
	CreatedAt        time.Time     `json:"timestamp"`
}

// PaymentEvent is what checkout-svc publishes to Kafka after an attempt
// reaches a terminal state.
type PaymentEvent struct {
	Type             string    `json:"type"`
	OrderID          string    `json:"order_id"`
	VenueID          string    `json:"venue_id"`
	TransactionID    string    `json:"transaction_id"`
	AmountMinorUnits int64     `json:"amount_minor_units"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
}

const EventPaymentSettled = "payment_settled"
