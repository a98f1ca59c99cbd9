package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"nightpay/checkout-svc/internal/domain"
	"nightpay/checkout-svc/internal/service"
	"nightpay/money"
)

type Handler struct {
	Tokenizer service.TokenizerInterface
	Catalog   service.CatalogInterface
	Processor service.ProcessorInterface
}

func NewHandler(tokenizer service.TokenizerInterface, catalog service.CatalogInterface, processor service.ProcessorInterface) *Handler {
	return &Handler{Tokenizer: tokenizer, Catalog: catalog, Processor: processor}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/tokenize", h.tokenize).Methods("POST")
	r.HandleFunc("/api/charge", h.charge).Methods("POST")
	r.HandleFunc("/api/venues/{venueId}/pricing", h.venuePricing).Methods("GET")
	r.HandleFunc("/api/pricing/{tierId}", h.tier).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}/payment", h.orderPayment).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}/pass", h.entryPass).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "checkout-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) tokenize(w http.ResponseWriter, r *http.Request) {
	var card domain.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.Tokenizer.Tokenize(r.Context(), &card)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCardNumber),
			errors.Is(err, service.ErrInvalidCVC),
			errors.Is(err, service.ErrExpiredCard):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(token)
}

type chargeRequest struct {
	Token            string `json:"token"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
	OrderID          string `json:"order_id"`
	TierID           string `json:"tier_id"`
}

func (h *Handler) charge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Token == "" || req.OrderID == "" || req.TierID == "" {
		http.Error(w, "Missing token, order_id or tier_id", http.StatusBadRequest)
		return
	}

	amount, err := money.FromMinorUnits(req.AmountMinorUnits, req.Currency)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	result, err := h.Processor.Charge(r.Context(), req.OrderID, req.TierID, req.Token, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySettled):
			// Replay the prior record untouched; same transaction id, no
			// second charge.
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(result)
		case errors.Is(err, service.ErrTierNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, service.ErrAmountMismatch):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, service.ErrTokenNotFound):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, service.ErrChargeInFlight):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, service.ErrGatewayUnavailable):
			http.Error(w, err.Error(), http.StatusBadGateway)
		case errors.Is(err, service.ErrPaymentCancelled):
			http.Error(w, err.Error(), http.StatusRequestTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) venuePricing(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	tiers := h.Catalog.TiersForVenue(venueID)
	if tiers == nil {
		tiers = []domain.PricingTier{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tiers)
}

func (h *Handler) tier(w http.ResponseWriter, r *http.Request) {
	tier, err := h.Catalog.Tier(mux.Vars(r)["tierId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tier)
}

func (h *Handler) orderPayment(w http.ResponseWriter, r *http.Request) {
	result, err := h.Processor.Result(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Payment not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) entryPass(w http.ResponseWriter, r *http.Request) {
	png, err := h.Processor.EntryPass(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
