package stockfolio

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// Security is the ledger of one symbol inside one portfolio: an append-only,
// chronologically sorted list of buy and sell transactions. A Security is
// owned exclusively by its Portfolio, which serializes mutations.
type Security struct {
	symbol  string
	records []Transaction
}

func newSecurity(symbol string) *Security {
	return &Security{symbol: symbol, records: make([]Transaction, 0)}
}

// Symbol returns the ticker symbol of the security.
func (s *Security) Symbol() string { return s.symbol }

// History returns a copy of the transaction records in chronological order.
// Callers can never mutate the ledger through it.
func (s *Security) History() []Transaction {
	out := make([]Transaction, len(s.records))
	copy(out, s.records)
	return out
}

// append adds a record and keeps the ledger sorted by date. The sort is
// stable, so same-day records keep their insertion order. It always writes
// to a fresh slice: record slices handed out earlier stay consistent.
func (s *Security) append(tx Transaction) {
	records := make([]Transaction, 0, len(s.records)+1)
	records = append(records, s.records...)
	records = append(records, tx)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Day.Before(records[j].Day)
	})
	s.records = records
}

// buy validates and appends a purchase. Validation fully precedes mutation:
// a rejected buy leaves the ledger untouched.
func (s *Security) buy(quantity int64, day date.Date, price decimal.Decimal) error {
	if quantity <= 0 {
		return fmt.Errorf("buy %s: got %d: %w", s.symbol, quantity, ErrInvalidQuantity)
	}
	if day.After(date.Today()) {
		return fmt.Errorf("buy %s on %s: %w", s.symbol, day, ErrFutureDate)
	}
	s.append(Transaction{Day: day, Kind: KindBuy, Quantity: quantity, UnitPrice: price})
	return nil
}

// sell validates and appends a sale. A sale larger than the position held on
// that date is rejected and never partially applied.
func (s *Security) sell(quantity int64, day date.Date, price decimal.Decimal) error {
	if quantity <= 0 {
		return fmt.Errorf("sell %s: got %d: %w", s.symbol, quantity, ErrInvalidQuantity)
	}
	if day.After(date.Today()) {
		return fmt.Errorf("sell %s on %s: %w", s.symbol, day, ErrFutureDate)
	}
	if held := s.QuantityAt(day); quantity > held {
		return fmt.Errorf("sell %d of %s on %s, position is only %d: %w",
			quantity, s.symbol, day, held, ErrInsufficientQuantity)
	}
	s.append(Transaction{Day: day, Kind: KindSell, Quantity: quantity, UnitPrice: price})
	return nil
}

// restore appends a record loaded from persisted state. It enforces the
// ledger invariants (positive quantities, never-negative position) but not
// the future-date gate, which only applies to new transactions.
func (s *Security) restore(tx Transaction) error {
	if tx.Quantity <= 0 {
		return fmt.Errorf("restore %s: got %d: %w", s.symbol, tx.Quantity, ErrInvalidQuantity)
	}
	if tx.Kind == KindSell && tx.Quantity > s.QuantityAt(tx.Day) {
		return fmt.Errorf("restore %s on %s: %w", s.symbol, tx.Day, ErrInsufficientQuantity)
	}
	s.append(tx)
	return nil
}

// QuantityAt returns the number of shares held at the end of the given day:
// the signed cumulative sum of all records dated at or before it.
func (s *Security) QuantityAt(day date.Date) int64 {
	var quantity int64
	for _, tx := range s.records {
		if tx.Day.After(day) {
			// The ledger is sorted by date, so it is safe to break.
			break
		}
		quantity += tx.signed()
	}
	return quantity
}

// InvestmentAt returns the net cash committed to the security up to the given
// day: buys add quantity times unit price, sells subtract it. This is a
// cash-flow net, not a realized-gain calculation.
func (s *Security) InvestmentAt(day date.Date) decimal.Decimal {
	investment := decimal.Zero
	for _, tx := range s.records {
		if tx.Day.After(day) {
			break
		}
		if tx.Kind == KindSell {
			investment = investment.Sub(tx.Amount())
		} else {
			investment = investment.Add(tx.Amount())
		}
	}
	return investment
}

// ValueAt returns the market value of the position on the given day, pricing
// it through the cache (weekend dates resolve to the prior close).
func (s *Security) ValueAt(ctx context.Context, day date.Date, cache *PriceCache) (decimal.Decimal, error) {
	quantity := s.QuantityAt(day)
	if quantity == 0 {
		return decimal.Zero, nil
	}
	price, err := cache.PriceOn(ctx, s.symbol, day)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(decimal.NewFromInt(quantity)), nil
}

// hasBuyOn reports whether the ledger already holds a purchase on that day.
func (s *Security) hasBuyOn(day date.Date) bool {
	for _, tx := range s.records {
		if tx.Day.After(day) {
			break
		}
		if tx.Kind == KindBuy && tx.Day == day {
			return true
		}
	}
	return false
}
