package tests

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "nightpay/checkout-svc/internal/api/http"
	"nightpay/checkout-svc/internal/domain"
	"nightpay/checkout-svc/internal/mocks"
	"nightpay/checkout-svc/internal/service"
)

type handlerMocks struct {
	tokenizer *mocks.TokenizerInterface
	catalog   *mocks.CatalogInterface
	processor *mocks.ProcessorInterface
}

func setupTestRouter(t *testing.T) (*mux.Router, *handlerMocks) {
	m := &handlerMocks{
		tokenizer: mocks.NewTokenizerInterface(t),
		catalog:   mocks.NewCatalogInterface(t),
		processor: mocks.NewProcessorInterface(t),
	}
	handler := httpapi.NewHandler(m.tokenizer, m.catalog, m.processor)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func TestHandler_tokenize(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(m *handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"number":"4242424242424242","exp_month":12,"exp_year":2030,"cvc":"123"}`,
			prepareMocks: func(m *handlerMocks) {
				m.tokenizer.On("Tokenize", mock.Anything, mock.Anything).
					Return(&domain.PaymentToken{ID: "tok_1", Brand: domain.BrandVisa, Last4: "4242", ExpMonth: 12, ExpYear: 2030}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"brand":"visa"`,
		},
		{
			name:         "invalid_json",
			payload:      `not json`,
			prepareMocks: func(m *handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "invalid_card_number",
			payload: `{"number":"1","exp_month":12,"exp_year":2030,"cvc":"123"}`,
			prepareMocks: func(m *handlerMocks) {
				m.tokenizer.On("Tokenize", mock.Anything, mock.Anything).
					Return(nil, service.ErrInvalidCardNumber).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:    "expired_card",
			payload: `{"number":"4242424242424242","exp_month":1,"exp_year":2019,"cvc":"123"}`,
			prepareMocks: func(m *handlerMocks) {
				m.tokenizer.On("Tokenize", mock.Anything, mock.Anything).
					Return(nil, service.ErrExpiredCard).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/tokenize", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_charge(t *testing.T) {
	successResult := &domain.PaymentResult{
		ID: "pay_1", OrderID: "order-77", TransactionID: "txn_1",
		AmountMinorUnits: 999, Currency: "USD", Status: domain.StatusSucceeded,
	}

	tests := []struct {
		name         string
		payload      string
		prepareMocks func(m *handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"token":"tok_1","amount_minor_units":999,"currency":"USD","order_id":"order-77","tier_id":"day-pass"}`,
			prepareMocks: func(m *handlerMocks) {
				m.processor.On("Charge", mock.Anything, "order-77", "day-pass", "tok_1", mock.Anything).
					Return(successResult, nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"transaction_id":"txn_1"`,
		},
		{
			name:    "already_settled_replays_prior_result",
			payload: `{"token":"tok_2","amount_minor_units":999,"currency":"USD","order_id":"order-77","tier_id":"day-pass"}`,
			prepareMocks: func(m *handlerMocks) {
				m.processor.On("Charge", mock.Anything, "order-77", "day-pass", "tok_2", mock.Anything).
					Return(successResult, service.ErrAlreadySettled).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"transaction_id":"txn_1"`,
		},
		{
			name:         "invalid_json",
			payload:      `{`,
			prepareMocks: func(m *handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing_token",
			payload:      `{"amount_minor_units":999,"currency":"USD","order_id":"order-77","tier_id":"day-pass"}`,
			prepareMocks: func(m *handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative_amount",
			payload:      `{"token":"tok_1","amount_minor_units":-5,"currency":"USD","order_id":"order-77","tier_id":"day-pass"}`,
			prepareMocks: func(m *handlerMocks) {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "unknown_currency",
			payload:      `{"token":"tok_1","amount_minor_units":999,"currency":"XXX","order_id":"order-77","tier_id":"day-pass"}`,
			prepareMocks: func(m *handlerMocks) {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:    "tier_not_found",
			payload: `{"token":"tok_1","amount_minor_units":999,"currency":"USD","order_id":"order-88","tier_id":"ghost"}`,
			prepareMocks: func(m *handlerMocks) {
				m.processor.On("Charge", mock.Anything, "order-88", "ghost", "tok_1", mock.Anything).
					Return(nil, service.ErrTierNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "amount_mismatch",
			payload: `{"token":"tok_1","amount_minor_units":100,"currency":"USD","order_id":"order-77","tier_id":"day-pass"}`,
			prepareMocks: func(m *handlerMocks) {
				m.processor.On("Charge", mock.Anything, "order-77", "day-pass", "tok_1", mock.Anything).
					Return(nil, service.ErrAmountMismatch).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:    "charge_in_flight",
			payload: `{"token":"tok_1","amount_minor_units":999,"currency":"USD","order_id":"order-77","tier_id":"day-pass"}`,
			prepareMocks: func(m *handlerMocks) {
				m.processor.On("Charge", mock.Anything, "order-77", "day-pass", "tok_1", mock.Anything).
					Return(nil, service.ErrChargeInFlight).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "gateway_unavailable",
			payload: `{"token":"tok_1","amount_minor_units":999,"currency":"USD","order_id":"order-77","tier_id":"day-pass"}`,
			prepareMocks: func(m *handlerMocks) {
				m.processor.On("Charge", mock.Anything, "order-77", "day-pass", "tok_1", mock.Anything).
					Return(nil, service.ErrGatewayUnavailable).Once()
			},
			expectedCode: http.StatusBadGateway,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/charge", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_venuePricing(t *testing.T) {
	router, m := setupTestRouter(t)

	m.catalog.On("TiersForVenue", "venue-velvet").Return([]domain.PricingTier{
		{ID: "day-pass", VenueID: "venue-velvet", Name: "Day Pass", PriceMinorUnits: 999, Currency: "USD"},
		{ID: "vip-table", VenueID: "venue-velvet", Name: "VIP Table", PriceMinorUnits: 4900, Currency: "USD"},
	}).Once()

	req := httptest.NewRequest("GET", "/api/venues/venue-velvet/pricing", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var tiers []domain.PricingTier
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&tiers))
	assert.Len(t, tiers, 2)
}

func TestHandler_venuePricing_EmptyVenueIsEmptyArray(t *testing.T) {
	router, m := setupTestRouter(t)

	m.catalog.On("TiersForVenue", "venue-ghost").Return(nil).Once()

	req := httptest.NewRequest("GET", "/api/venues/venue-ghost/pricing", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestHandler_tier(t *testing.T) {
	router, m := setupTestRouter(t)

	m.catalog.On("Tier", "day-pass").Return(domain.PricingTier{
		ID: "day-pass", VenueID: "venue-velvet", Name: "Day Pass", PriceMinorUnits: 999, Currency: "USD",
	}, nil).Once()
	m.catalog.On("Tier", "ghost").Return(domain.PricingTier{}, service.ErrTierNotFound).Once()

	req := httptest.NewRequest("GET", "/api/pricing/day-pass", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"price_minor_units":999`)

	req = httptest.NewRequest("GET", "/api/pricing/ghost", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_orderPayment(t *testing.T) {
	router, m := setupTestRouter(t)

	m.processor.On("Result", mock.Anything, "order-77").
		Return(&domain.PaymentResult{ID: "pay_1", OrderID: "order-77", Status: domain.StatusSucceeded}, nil).Once()
	m.processor.On("Result", mock.Anything, "missing").
		Return(nil, sql.ErrNoRows).Once()

	req := httptest.NewRequest("GET", "/api/orders/order-77/payment", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"success"`)

	req = httptest.NewRequest("GET", "/api/orders/missing/payment", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_entryPass(t *testing.T) {
	router, m := setupTestRouter(t)

	m.processor.On("EntryPass", mock.Anything, "order-77").Return([]byte{0x89, 'P', 'N', 'G'}, nil).Once()

	req := httptest.NewRequest("GET", "/api/orders/order-77/pass", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
}
