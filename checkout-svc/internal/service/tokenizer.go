package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nightpay/checkout-svc/internal/domain"
)

var (
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidCVC        = errors.New("invalid cvc")
	ErrExpiredCard       = errors.New("card is expired")
)

// Tokenizer converts raw card details into vault-backed single-use tokens.
// Raw numbers and CVCs never leave this package.
type Tokenizer struct {
	vault TokenVault
	now   func() time.Time
}

func NewTokenizer(vault TokenVault) *Tokenizer {
	return &Tokenizer{vault: vault, now: time.Now}
}

// Tokenize validates the card, stores an opaque token in the vault and wipes
// the caller's card in place before returning, on every path including
// validation failures. Cancellation before the vault write completes issues
// no token.
func (t *Tokenizer) Tokenize(ctx context.Context, card *domain.Card) (*domain.PaymentToken, error) {
	defer card.Wipe()

	number := normalizeCardNumber(card.Number)
	if len(number) < 13 || len(number) > 19 {
		return nil, ErrInvalidCardNumber
	}
	if len(card.CVC) < 3 || len(card.CVC) > 4 || !digitsOnly(card.CVC) {
		return nil, ErrInvalidCVC
	}
	if expired(card.ExpMonth, card.ExpYear, t.now()) {
		return nil, ErrExpiredCard
	}

	token := domain.PaymentToken{
		ID:        "tok_" + uuid.NewString(),
		Brand:     detectBrand(number),
		Last4:     number[len(number)-4:],
		ExpMonth:  card.ExpMonth,
		ExpYear:   card.ExpYear,
		CreatedAt: t.now(),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.vault.SaveToken(ctx, token); err != nil {
		return nil, err
	}

	return &token, nil
}

// normalizeCardNumber strips spaces and dashes; anything else disqualifies
// the number by leaving non-digits behind.
func normalizeCardNumber(raw string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	if !digitsOnly(cleaned) {
		return ""
	}
	return cleaned
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func detectBrand(number string) domain.CardBrand {
	switch number[0] {
	case '4':
		return domain.BrandVisa
	case '5':
		return domain.BrandMastercard
	case '3':
		return domain.BrandAmex
	case '6':
		return domain.BrandDiscover
	default:
		return domain.BrandUnknown
	}
}

// expired treats a card as valid through the last day of its expiry month.
func expired(month, year int, now time.Time) bool {
	if month < 1 || month > 12 || year < 0 {
		return true
	}
	if year < 100 {
		year += 2000
	}
	endOfMonth := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return !now.Before(endOfMonth)
}
