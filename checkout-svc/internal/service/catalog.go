package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nightpay/checkout-svc/internal/domain"
)

var ErrTierNotFound = errors.New("pricing tier not found")

// CatalogService serves read-mostly tier lookups from an in-memory snapshot.
// Refresh replaces the snapshot wholesale; readers never observe a partial
// load.
type CatalogService struct {
	repo PaymentRepository

	mu      sync.RWMutex
	byID    map[string]domain.PricingTier
	byVenue map[string][]domain.PricingTier
}

func NewCatalogService(repo PaymentRepository) *CatalogService {
	return &CatalogService{
		repo:    repo,
		byID:    map[string]domain.PricingTier{},
		byVenue: map[string][]domain.PricingTier{},
	}
}

// Refresh reloads every tier from the repository and swaps both indexes in
// one critical section.
func (s *CatalogService) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tiers, err := s.repo.ListTiers()
	if err != nil {
		return fmt.Errorf("failed to load pricing catalog: %w", err)
	}

	byID := make(map[string]domain.PricingTier, len(tiers))
	byVenue := make(map[string][]domain.PricingTier)
	for _, tier := range tiers {
		byID[tier.ID] = tier
		byVenue[tier.VenueID] = append(byVenue[tier.VenueID], tier)
	}

	s.mu.Lock()
	s.byID = byID
	s.byVenue = byVenue
	s.mu.Unlock()

	return nil
}

// TiersForVenue returns the venue's tiers; unknown venues get an empty list.
func (s *CatalogService) TiersForVenue(venueID string) []domain.PricingTier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tiers := make([]domain.PricingTier, len(s.byVenue[venueID]))
	copy(tiers, s.byVenue[venueID])
	return tiers
}

func (s *CatalogService) Tier(id string) (domain.PricingTier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tier, ok := s.byID[id]
	if !ok {
		return domain.PricingTier{}, fmt.Errorf("%w: %q", ErrTierNotFound, id)
	}
	return tier, nil
}
