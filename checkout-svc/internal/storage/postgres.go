package storage

import (
	"database/sql"
	"fmt"

	"nightpay/checkout-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// EnsureSchema creates the checkout tables. The partial unique index is the
// durable half of the idempotency guard: Postgres refuses a second Succeeded
// row per order even if every in-process check is raced past.
func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS pricing_tiers (
			id TEXT PRIMARY KEY,
			venue_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price_minor_units BIGINT NOT NULL CHECK (price_minor_units >= 0),
			currency TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			token_id TEXT NOT NULL,
			transaction_id TEXT NOT NULL,
			amount_minor_units BIGINT NOT NULL,
			currency TEXT NOT NULL,
			status TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			entry_pass BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS payments_settled_order
			ON payments (order_id) WHERE status = 'success'`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

func (r *PostgresRepository) ListTiers() ([]domain.PricingTier, error) {
	rows, err := r.DB.Query(`
		SELECT id, venue_id, name, price_minor_units, currency, COALESCE(description, ''), created_at
		FROM pricing_tiers
		ORDER BY price_minor_units ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.PricingTier
	for rows.Next() {
		var tier domain.PricingTier
		if err := rows.Scan(&tier.ID, &tier.VenueID, &tier.Name, &tier.PriceMinorUnits,
			&tier.Currency, &tier.Description, &tier.CreatedAt); err != nil {
			continue
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

func (r *PostgresRepository) InsertResult(result *domain.PaymentResult) error {
	return r.DB.QueryRow(`
		INSERT INTO payments (id, order_id, token_id, transaction_id, amount_minor_units, currency, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, result.ID, result.OrderID, result.TokenID, result.TransactionID,
		result.AmountMinorUnits, result.Currency, string(result.Status), result.Reason, result.CreatedAt).
		Scan(&result.CreatedAt)
}

// SettledResult returns the Succeeded record for an order, or nil when the
// order has never settled.
func (r *PostgresRepository) SettledResult(orderID string) (*domain.PaymentResult, error) {
	result, err := r.scanResult(r.DB.QueryRow(`
		SELECT id, order_id, token_id, transaction_id, amount_minor_units, currency, status, COALESCE(reason, ''), created_at
		FROM payments
		WHERE order_id = $1 AND status = 'success'
	`, orderID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return result, err
}

// ResultForOrder returns the most recent attempt of any status.
func (r *PostgresRepository) ResultForOrder(orderID string) (*domain.PaymentResult, error) {
	return r.scanResult(r.DB.QueryRow(`
		SELECT id, order_id, token_id, transaction_id, amount_minor_units, currency, status, COALESCE(reason, ''), created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, orderID))
}

func (r *PostgresRepository) scanResult(row *sql.Row) (*domain.PaymentResult, error) {
	var result domain.PaymentResult
	var status string
	err := row.Scan(&result.ID, &result.OrderID, &result.TokenID, &result.TransactionID,
		&result.AmountMinorUnits, &result.Currency, &status, &result.Reason, &result.CreatedAt)
	if err != nil {
		return nil, err
	}
	result.Status = domain.PaymentStatus(status)
	return &result, nil
}

func (r *PostgresRepository) SaveEntryPass(orderID string, png []byte) error {
	_, err := r.DB.Exec(`
		UPDATE payments SET entry_pass = $1
		WHERE order_id = $2 AND status = 'success'
	`, png, orderID)
	return err
}

func (r *PostgresRepository) EntryPass(orderID string) ([]byte, error) {
	var png []byte
	err := r.DB.QueryRow(`
		SELECT entry_pass FROM payments
		WHERE order_id = $1 AND status = 'success'
	`, orderID).Scan(&png)
	if err != nil {
		return nil, err
	}
	return png, nil
}
