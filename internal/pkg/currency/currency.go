// Package currency parses and renders the single currency every price,
// balance and ledger amount is held in.
//
// Amounts never carry more than two decimal places, so sums and differences
// of stored amounts are exact and what a user is shown is what they can spend.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places an amount may carry
const Places = 2

var (
	// ErrMalformed is returned for input that is not a decimal number
	ErrMalformed = errors.New("amount is not a number")
	// ErrTooPrecise is returned for input with more than two decimal places
	ErrTooPrecise = errors.New("amount has more than two decimal places")
)

// Currency describes the money unit of the marketplace
type Currency struct {
	code string
}

// New creates a currency for an ISO style code such as "INR"
func New(code string) (*Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.New("currency code is required")
	}
	return &Currency{code: code}, nil
}

// Code returns the currency code
func (c *Currency) Code() string {
	return c.code
}

// Parse reads a user supplied amount. Trailing zeros are fine, "10.50" and
// "10.5" are the same amount; "10.505" is rejected rather than rounded.
func (c *Currency) Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if !IsExact(d) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	return d, nil
}

// IsExact reports whether d fits in two decimal places without rounding
func IsExact(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Places))
}

// FromRate converts an amount quoted in another unit at a fixed rate, rounded
// half up to two places. Only import paths use it; stored amounts are never
// converted again.
func FromRate(amount decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(Places)
}

// Format renders an amount as text, e.g. "INR 4499.25"
func (c *Currency) Format(amount decimal.Decimal) string {
	return fmt.Sprintf("%s %s", c.code, amount.StringFixed(Places))
}
