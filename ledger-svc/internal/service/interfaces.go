package service

import (
	"context"

	"nightpay/ledger-svc/internal/domain"
	"nightpay/ledger-svc/internal/storage"
)

type StoreInterface interface {
	UpdateVenueRevenue(event domain.PaymentEvent) error
	UpdateLeaderboards(event domain.PaymentEvent) error
}

type RevenueInterface interface {
	VenueRevenue(venueID, currency string) (*domain.VenueRevenue, error)
	TopVenuesToday(currency string, limit int) ([]domain.LeaderboardEntry, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessPayment(event domain.PaymentEvent)
}

var (
	_ StoreInterface   = (*storage.Store)(nil)
	_ RevenueInterface = (*storage.Store)(nil)
)
