package domain

import "time"

// PaymentEvent mirrors the payload checkout-svc publishes on the payments
// topic.
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

const (
	EventPaymentSettled = "payment_settled"
	StatusSucceeded     = "success"
)

// VenueRevenue is the running per-venue, per-currency aggregate.
type VenueRevenue struct {
	VenueID         string    `json:"venue_id"`
	Currency        string    `json:"currency"`
	GrossMinorUnits int64     `json:"gross_minor_units"`
	PaymentCount    int64     `json:"payment_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LeaderboardEntry ranks venues by gross revenue.
type LeaderboardEntry struct {
	VenueID         string `json:"venue_id"`
	Currency        string `json:"currency"`
	GrossMinorUnits int64  `json:"gross_minor_units"`
}
