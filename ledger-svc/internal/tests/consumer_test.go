package tests

import (
	"errors"
	"testing"

	"nightpay/ledger-svc/internal/domain"
	"nightpay/ledger-svc/internal/mocks"
	"nightpay/ledger-svc/internal/service"
)

func settledEvent() domain.PaymentEvent {
	return domain.PaymentEvent{
		Type:             domain.EventPaymentSettled,
		OrderID:          "day-pass",
		VenueID:          "venue-velvet",
		TransactionID:    "txn_1",
		AmountMinorUnits: 999,
		Currency:         "USD",
		Status:           domain.StatusSucceeded,
	}
}

func TestConsumer_ProcessPayment(t *testing.T) {
	tests := []struct {
		name           string
		inputEvent     domain.PaymentEvent
		setupMockStore func(*mocks.StoreInterface)
	}{
		{
			name:       "success",
			inputEvent: settledEvent(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("UpdateVenueRevenue", settledEvent()).Return(nil)
				mockStore.On("UpdateLeaderboards", settledEvent()).Return(nil)
			},
		},
		{
			name:       "UpdateVenueRevenue error stops processing",
			inputEvent: settledEvent(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("UpdateVenueRevenue", settledEvent()).Return(errors.New("db connection failed"))
			},
		},
		{
			name:       "UpdateLeaderboards error",
			inputEvent: settledEvent(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("UpdateVenueRevenue", settledEvent()).Return(nil)
				mockStore.On("UpdateLeaderboards", settledEvent()).Return(errors.New("redis error"))
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := &service.Consumer{
				Store: mockStore,
			}

			consumer.ProcessPayment(testCase.inputEvent)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestConsumer_SkipsNonRevenueEvents(t *testing.T) {
	tests := []struct {
		name  string
		event domain.PaymentEvent
	}{
		{
			name: "unknown_type",
			event: domain.PaymentEvent{
				Type: "unknown_type", OrderID: "day-pass", Status: domain.StatusSucceeded,
			},
		},
		{
			name: "declined_payment",
			event: domain.PaymentEvent{
				Type: domain.EventPaymentSettled, OrderID: "day-pass", Status: "failure",
			},
		},
		{
			name: "pending_payment",
			event: domain.PaymentEvent{
				Type: domain.EventPaymentSettled, OrderID: "day-pass", Status: "pending",
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			consumer := &service.Consumer{
				Store: mockStore,
			}

			consumer.ProcessPayment(testCase.event)
			mockStore.AssertNotCalled(t, "UpdateVenueRevenue")
			mockStore.AssertNotCalled(t, "UpdateLeaderboards")
		})
	}
}
