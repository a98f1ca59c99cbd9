package tests

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "nightpay/ledger-svc/internal/api/http"
	"nightpay/ledger-svc/internal/domain"
	"nightpay/ledger-svc/internal/mocks"
)

func setupTestRouter(mockRevenue *mocks.RevenueInterface) *mux.Router {
	handler := httpapi.NewHandler(mockRevenue)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandler_getVenueRevenue(t *testing.T) {
	mockRevenue := mocks.NewRevenueInterface(t)
	router := setupTestRouter(mockRevenue)

	mockRevenue.On("VenueRevenue", "venue-velvet", "USD").Return(&domain.VenueRevenue{
		VenueID:         "venue-velvet",
		Currency:        "USD",
		GrossMinorUnits: 5899,
		PaymentCount:    3,
		UpdatedAt:       time.Now().UTC(),
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/venues/venue-velvet/revenue", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var revenue domain.VenueRevenue
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&revenue))
	assert.Equal(t, int64(5899), revenue.GrossMinorUnits)
	assert.Equal(t, int64(3), revenue.PaymentCount)
}

func TestHandler_getVenueRevenue_ExplicitCurrency(t *testing.T) {
	mockRevenue := mocks.NewRevenueInterface(t)
	router := setupTestRouter(mockRevenue)

	mockRevenue.On("VenueRevenue", "venue-velvet", "EUR").
		Return(&domain.VenueRevenue{VenueID: "venue-velvet", Currency: "EUR"}, nil).Once()

	req := httptest.NewRequest("GET", "/api/venues/venue-velvet/revenue?currency=EUR", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_getVenueRevenue_NotFound(t *testing.T) {
	mockRevenue := mocks.NewRevenueInterface(t)
	router := setupTestRouter(mockRevenue)

	mockRevenue.On("VenueRevenue", "venue-ghost", "USD").Return(nil, sql.ErrNoRows).Once()

	req := httptest.NewRequest("GET", "/api/venues/venue-ghost/revenue", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_getTopVenues(t *testing.T) {
	mockRevenue := mocks.NewRevenueInterface(t)
	router := setupTestRouter(mockRevenue)

	mockRevenue.On("TopVenuesToday", "USD", 10).Return([]domain.LeaderboardEntry{
		{VenueID: "venue-velvet", Currency: "USD", GrossMinorUnits: 5899},
		{VenueID: "venue-echo", Currency: "USD", GrossMinorUnits: 1500},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/analytics/top-venues", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var entries []domain.LeaderboardEntry
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "venue-velvet", entries[0].VenueID)
}

func TestHandler_getTopVenues_BadLimitFallsBackToDefault(t *testing.T) {
	mockRevenue := mocks.NewRevenueInterface(t)
	router := setupTestRouter(mockRevenue)

	mockRevenue.On("TopVenuesToday", "USD", 10).Return([]domain.LeaderboardEntry{}, nil).Times(3)

	for _, limit := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest("GET", "/api/analytics/top-venues?limit="+limit, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

func TestHandler_getTopVenues_ErrorIsEmptyList(t *testing.T) {
	mockRevenue := mocks.NewRevenueInterface(t)
	router := setupTestRouter(mockRevenue)

	mockRevenue.On("TopVenuesToday", "USD", 5).Return(nil, sql.ErrConnDone).Once()

	req := httptest.NewRequest("GET", "/api/analytics/top-venues?limit=5", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}
