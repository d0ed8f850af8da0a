package dto

import (
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/pkg/currency"
)

// Money is an amount together with its currency
type Money struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"4499.25"`
	Currency  string          `json:"currency" example:"INR"`
	Formatted string          `json:"formatted" example:"INR 4499.25"`
}

// NewMoney renders an amount
func NewMoney(cur *currency.Currency, amount decimal.Decimal) Money {
	return Money{
		Amount:    amount,
		Currency:  cur.Code(),
		Formatted: cur.Format(amount),
	}
}
