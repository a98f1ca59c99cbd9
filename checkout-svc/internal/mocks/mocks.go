// Package mocks provides testify mocks for the service interfaces, shaped
// like mockery output so tests can set expectations with On/Return.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"nightpay/checkout-svc/internal/domain"
	"nightpay/checkout-svc/internal/service"
	"nightpay/money"
)

type TokenizerInterface struct {
	mock.Mock
}

func NewTokenizerInterface(t *testing.T) *TokenizerInterface {
	m := &TokenizerInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenizerInterface) Tokenize(ctx context.Context, card *domain.Card) (*domain.PaymentToken, error) {
	args := m.Called(ctx, card)
	token, _ := args.Get(0).(*domain.PaymentToken)
	return token, args.Error(1)
}

type CatalogInterface struct {
	mock.Mock
}

func NewCatalogInterface(t *testing.T) *CatalogInterface {
	m := &CatalogInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogInterface) TiersForVenue(venueID string) []domain.PricingTier {
	args := m.Called(venueID)
	tiers, _ := args.Get(0).([]domain.PricingTier)
	return tiers
}

func (m *CatalogInterface) Tier(id string) (domain.PricingTier, error) {
	args := m.Called(id)
	tier, _ := args.Get(0).(domain.PricingTier)
	return tier, args.Error(1)
}

func (m *CatalogInterface) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type ProcessorInterface struct {
	mock.Mock
}

func NewProcessorInterface(t *testing.T) *ProcessorInterface {
	m := &ProcessorInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProcessorInterface) Charge(ctx context.Context, orderID, tierID, tokenID string, amount money.Amount) (*domain.PaymentResult, error) {
	args := m.Called(ctx, orderID, tierID, tokenID, amount)
	result, _ := args.Get(0).(*domain.PaymentResult)
	return result, args.Error(1)
}

func (m *ProcessorInterface) Result(ctx context.Context, orderID string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, orderID)
	result, _ := args.Get(0).(*domain.PaymentResult)
	return result, args.Error(1)
}

func (m *ProcessorInterface) EntryPass(ctx context.Context, orderID string) ([]byte, error) {
	args := m.Called(ctx, orderID)
	png, _ := args.Get(0).([]byte)
	return png, args.Error(1)
}

type TokenVault struct {
	mock.Mock
}

func NewTokenVault(t *testing.T) *TokenVault {
	m := &TokenVault{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenVault) SaveToken(ctx context.Context, token domain.PaymentToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *TokenVault) Token(ctx context.Context, id string) (*domain.PaymentToken, error) {
	args := m.Called(ctx, id)
	token, _ := args.Get(0).(*domain.PaymentToken)
	return token, args.Error(1)
}

func (m *TokenVault) ConsumeToken(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type OrderLocker struct {
	mock.Mock
}

func NewOrderLocker(t *testing.T) *OrderLocker {
	m := &OrderLocker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderLocker) AcquireOrderLock(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderLocker) ReleaseOrderLock(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

type PaymentRepository struct {
	mock.Mock
}

func NewPaymentRepository(t *testing.T) *PaymentRepository {
	m := &PaymentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentRepository) ListTiers() ([]domain.PricingTier, error) {
	args := m.Called()
	tiers, _ := args.Get(0).([]domain.PricingTier)
	return tiers, args.Error(1)
}

func (m *PaymentRepository) InsertResult(result *domain.PaymentResult) error {
	return m.Called(result).Error(0)
}

func (m *PaymentRepository) SettledResult(orderID string) (*domain.PaymentResult, error) {
	args := m.Called(orderID)
	result, _ := args.Get(0).(*domain.PaymentResult)
	return result, args.Error(1)
}

func (m *PaymentRepository) ResultForOrder(orderID string) (*domain.PaymentResult, error) {
	args := m.Called(orderID)
	result, _ := args.Get(0).(*domain.PaymentResult)
	return result, args.Error(1)
}

func (m *PaymentRepository) SaveEntryPass(orderID string, png []byte) error {
	return m.Called(orderID, png).Error(0)
}

func (m *PaymentRepository) EntryPass(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	png, _ := args.Get(0).([]byte)
	return png, args.Error(1)
}

type SettlementGateway struct {
	mock.Mock
}

func NewSettlementGateway(t *testing.T) *SettlementGateway {
	m := &SettlementGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SettlementGateway) Authorize(ctx context.Context, token domain.PaymentToken, amount money.Amount) (*service.Authorization, error) {
	args := m.Called(ctx, token, amount)
	auth, _ := args.Get(0).(*service.Authorization)
	return auth, args.Error(1)
}

type PaymentPublisher struct {
	mock.Mock
}

func NewPaymentPublisher(t *testing.T) *PaymentPublisher {
	m := &PaymentPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentPublisher) PublishPayment(ctx context.Context, event domain.PaymentEvent) error {
	return m.Called(ctx, event).Error(0)
}

type PassGenerator struct {
	mock.Mock
}

func NewPassGenerator(t *testing.T) *PassGenerator {
	m := &PassGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PassGenerator) Generate(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	png, _ := args.Get(0).([]byte)
	return png, args.Error(1)
}

var (
	_ service.TokenizerInterface = (*TokenizerInterface)(nil)
	_ service.CatalogInterface   = (*CatalogInterface)(nil)
	_ service.ProcessorInterface = (*ProcessorInterface)(nil)
	_ service.TokenVault         = (*TokenVault)(nil)
	_ service.OrderLocker        = (*OrderLocker)(nil)
	_ service.PaymentRepository  = (*PaymentRepository)(nil)
	_ service.SettlementGateway  = (*SettlementGateway)(nil)
	_ service.PaymentPublisher   = (*PaymentPublisher)(nil)
	_ service.PassGenerator      = (*PassGenerator)(nil)
)
