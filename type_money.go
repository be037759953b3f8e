package stockfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a display-only pairing of a decimal value with a currency code.
// The core computes in bare decimals; Money exists for the presentation
// collaborator to format values.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M returns a Money for the given value and ISO currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// Currency returns the money's currency code.
func (m Money) Currency() string { return m.cur }

// Decimal returns the raw decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// currency resolves a never-nil currency definition.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency's symbol and fraction rules.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
