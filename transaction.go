package stockfolio

import (
	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// TxKind is a typed string identifying the kind of a ledger transaction.
type TxKind string

// The two kinds of transactions a security ledger records.
const (
	KindBuy  TxKind = "buy"
	KindSell TxKind = "sell"
)

// Transaction is a single immutable entry in a security's ledger.
// Transactions are ordered by date; same-day entries keep insertion order.
type Transaction struct {
	Day       date.Date       `json:"date"`
	Kind      TxKind          `json:"kind"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Amount returns the cash moved by the transaction: quantity times unit price.
func (t Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
}

// signed returns the quantity with a sign: positive for buys, negative for sells.
func (t Transaction) signed() int64 {
	if t.Kind == KindSell {
		return -t.Quantity
	}
	return t.Quantity
}
