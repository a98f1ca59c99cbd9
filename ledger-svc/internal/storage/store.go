package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"nightpay/ledger-svc/internal/domain"
)

type Store struct {
	db  *sql.DB
	rdb *redis.Client
	ctx context.Context
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:  db,
		rdb: rdb,
		ctx: context.Background(),
	}
}

func (s *Store) EnsureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS venue_revenue (
			venue_id TEXT NOT NULL,
			currency TEXT NOT NULL,
			gross_minor_units BIGINT NOT NULL DEFAULT 0,
			payment_count BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (venue_id, currency)
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UpdateVenueRevenue folds one settled payment into the Postgres aggregate
// and mirrors the refreshed snapshot in Redis for quick lookups.
func (s *Store) UpdateVenueRevenue(event domain.PaymentEvent) error {
	_, err := s.db.Exec(`
		INSERT INTO venue_revenue (venue_id, currency, gross_minor_units, payment_count, updated_at)
		VALUES ($1, $2, $3, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (venue_id, currency) DO UPDATE
		SET gross_minor_units = venue_revenue.gross_minor_units + EXCLUDED.gross_minor_units,
		    payment_count = venue_revenue.payment_count + 1,
		    updated_at = CURRENT_TIMESTAMP
	`, event.VenueID, event.Currency, event.AmountMinorUnits)
	if err != nil {
		return err
	}

	var gross, count int64
	if err := s.db.QueryRow(`
		SELECT gross_minor_units, payment_count
		FROM venue_revenue
		WHERE venue_id = $1 AND currency = $2
	`, event.VenueID, event.Currency).Scan(&gross, &count); err != nil {
		return err
	}

	key := revenueKey(event.VenueID, event.Currency)
	s.rdb.HSet(s.ctx, key, map[string]interface{}{
		"gross_minor_units": gross,
		"payment_count":     count,
		"last_updated":      time.Now().Unix(),
	})
	s.rdb.Expire(s.ctx, key, 24*time.Hour)
	return nil
}

// UpdateLeaderboards bumps the daily and all-time revenue rankings. Scores
// are integer minor units; boards are per-currency so amounts stay
// comparable.
func (s *Store) UpdateLeaderboards(event domain.PaymentEvent) error {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf("revenue:daily:%s:%s", today, event.Currency)
	s.rdb.ZIncrBy(s.ctx, dailyKey, float64(event.AmountMinorUnits), event.VenueID)
	s.rdb.Expire(s.ctx, dailyKey, 7*24*time.Hour)

	var gross int64
	if err := s.db.QueryRow(`
		SELECT COALESCE(gross_minor_units, 0)
		FROM venue_revenue
		WHERE venue_id = $1 AND currency = $2
	`, event.VenueID, event.Currency).Scan(&gross); err != nil {
		return err
	}

	allTimeKey := "revenue:alltime:" + event.Currency
	s.rdb.ZAdd(s.ctx, allTimeKey, redis.Z{
		Score:  float64(gross),
		Member: event.VenueID,
	})
	return nil
}

// VenueRevenue reads the cached snapshot, falling back to Postgres when the
// cache is cold.
func (s *Store) VenueRevenue(venueID, currency string) (*domain.VenueRevenue, error) {
	key := revenueKey(venueID, currency)
	cached, err := s.rdb.HGetAll(s.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		gross, _ := strconv.ParseInt(cached["gross_minor_units"], 10, 64)
		count, _ := strconv.ParseInt(cached["payment_count"], 10, 64)
		updated, _ := strconv.ParseInt(cached["last_updated"], 10, 64)
		return &domain.VenueRevenue{
			VenueID:         venueID,
			Currency:        currency,
			GrossMinorUnits: gross,
			PaymentCount:    count,
			UpdatedAt:       time.Unix(updated, 0).UTC(),
		}, nil
	}

	var revenue domain.VenueRevenue
	err = s.db.QueryRow(`
		SELECT venue_id, currency, gross_minor_units, payment_count, updated_at
		FROM venue_revenue
		WHERE venue_id = $1 AND currency = $2
	`, venueID, currency).
		Scan(&revenue.VenueID, &revenue.Currency, &revenue.GrossMinorUnits, &revenue.PaymentCount, &revenue.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &revenue, nil
}

// TopVenuesToday returns today's revenue leaderboard for a currency.
func (s *Store) TopVenuesToday(currency string, limit int) ([]domain.LeaderboardEntry, error) {
	today := time.Now().Format("2006-01-02")
	key := fmt.Sprintf("revenue:daily:%s:%s", today, currency)

	result, err := s.rdb.ZRevRangeWithScores(s.ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(result))
	for _, member := range result {
		venueID, _ := member.Member.(string)
		entries = append(entries, domain.LeaderboardEntry{
			VenueID:         venueID,
			Currency:        currency,
			GrossMinorUnits: int64(member.Score),
		})
	}
	return entries, nil
}

func revenueKey(venueID, currency string) string {
	return "venue:revenue:" + venueID + ":" + currency
}
