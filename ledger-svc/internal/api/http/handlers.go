package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"nightpay/ledger-svc/internal/domain"
	"nightpay/ledger-svc/internal/service"
)

type Handler struct {
	Revenue service.RevenueInterface
}

func NewHandler(revenue service.RevenueInterface) *Handler {
	return &Handler{Revenue: revenue}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "ledger-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/venues/{venueId}/revenue", h.getVenueRevenue).Methods("GET")
	r.HandleFunc("/api/analytics/top-venues", h.getTopVenues).Methods("GET")
}

func (h *Handler) getVenueRevenue(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = "USD"
	}

	revenue, err := h.Revenue.VenueRevenue(venueID, currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "No revenue recorded for venue", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(revenue)
}

func (h *Handler) getTopVenues(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = "USD"
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}

	entries, err := h.Revenue.TopVenuesToday(currency, limit)
	if err != nil || entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
