// Package money holds the Amount value type used across all services.
// Amounts are exact decimals; float64 never touches a price.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// minorUnitExponents maps supported ISO 4217 codes to their minor-unit
// exponent (USD -> 2 means 100 minor units per major unit).
var minorUnitExponents = map[string]int32{
	"USD": 2,
	"EUR": 2,
	"GBP": 2,
	"CAD": 2,
	"AUD": 2,
	"MXN": 2,
	"BRL": 2,
	"CHF": 2,
	"SEK": 2,
	"NOK": 2,
	"DKK": 2,
	"PLN": 2,
	"JPY": 0,
	"KRW": 0,
	"KES": 2,
	"NGN": 2,
	"ZAR": 2,
	"BHD": 3,
	"KWD": 3,
}

// Amount is an immutable decimal value tagged with an ISO 4217 currency code.
type Amount struct {
	value    decimal.Decimal
	currency string
}

// New parses a decimal string such as "9.99" into an Amount.
func New(value, currency string) (Amount, error) {
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q is not a decimal", ErrInvalidAmount, value)
	}
	return fromDecimal(dec, currency)
}

// FromMinorUnits builds an Amount from integer minor units (cents for USD).
func FromMinorUnits(minor int64, currency string) (Amount, error) {
	exp, ok := minorUnitExponents[strings.ToUpper(currency)]
	if !ok {
		return Amount{}, fmt.Errorf("%w: unknown currency %q", ErrInvalidAmount, currency)
	}
	return fromDecimal(decimal.New(minor, -exp), currency)
}

// Zero returns the zero Amount for a currency.
func Zero(currency string) (Amount, error) {
	return fromDecimal(decimal.Zero, currency)
}

func fromDecimal(dec decimal.Decimal, currency string) (Amount, error) {
	code := strings.ToUpper(currency)
	if _, ok := minorUnitExponents[code]; !ok {
		return Amount{}, fmt.Errorf("%w: unknown currency %q", ErrInvalidAmount, currency)
	}
	if dec.IsNegative() {
		return Amount{}, fmt.Errorf("%w: negative value %s", ErrInvalidAmount, dec)
	}
	return Amount{value: dec, currency: code}, nil
}

func (a Amount) Currency() string { return a.currency }

func (a Amount) IsZero() bool { return a.value.IsZero() }

// MinorUnits returns the value in integer minor units, rounded to the
// currency's exponent.
func (a Amount) MinorUnits() int64 {
	exp := minorUnitExponents[a.currency]
	return a.value.Shift(exp).Round(0).IntPart()
}

// Add returns a+b, failing when the currencies differ.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.currency != b.currency {
		return Amount{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.currency, b.currency)
	}
	return Amount{value: a.value.Add(b.value), currency: a.currency}, nil
}

// MulInt scales the amount by an integer quantity.
func (a Amount) MulInt(n int64) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(n)), currency: a.currency}
}

// Equal reports exact equality of value and currency.
func (a Amount) Equal(b Amount) bool {
	return a.currency == b.currency && a.value.Equal(b.value)
}

// String renders the bare decimal with the currency code, e.g. "9.99 USD".
// Locale-aware formatting is the caller's concern.
func (a Amount) String() string {
	exp := minorUnitExponents[a.currency]
	return a.value.StringFixed(exp) + " " + a.currency
}
