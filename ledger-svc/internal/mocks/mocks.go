// Package mocks provides testify mocks for the ledger service interfaces.
package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"nightpay/ledger-svc/internal/domain"
	"nightpay/ledger-svc/internal/service"
)

type StoreInterface struct {
	mock.Mock
}

func NewStoreInterface(t *testing.T) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StoreInterface) UpdateVenueRevenue(event domain.PaymentEvent) error {
	return m.Called(event).Error(0)
}

func (m *StoreInterface) UpdateLeaderboards(event domain.PaymentEvent) error {
	return m.Called(event).Error(0)
}

type RevenueInterface struct {
	mock.Mock
}

func NewRevenueInterface(t *testing.T) *RevenueInterface {
	m := &RevenueInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RevenueInterface) VenueRevenue(venueID, currency string) (*domain.VenueRevenue, error) {
	args := m.Called(venueID, currency)
	revenue, _ := args.Get(0).(*domain.VenueRevenue)
	return revenue, args.Error(1)
}

func (m *RevenueInterface) TopVenuesToday(currency string, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(currency, limit)
	entries, _ := args.Get(0).([]domain.LeaderboardEntry)
	return entries, args.Error(1)
}

var (
	_ service.StoreInterface   = (*StoreInterface)(nil)
	_ service.RevenueInterface = (*RevenueInterface)(nil)
)
