package stockfolio

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// Portfolio owns a set of securities, one per symbol. Mutations are
// serialized per portfolio; reads work on a consistent snapshot of the
// ledgers at call time.
type Portfolio struct {
	id   uuid.UUID
	name string

	mu         sync.RWMutex
	securities map[string]*Security
}

// NewPortfolio returns an empty portfolio with the given name.
func NewPortfolio(name string) *Portfolio {
	return &Portfolio{
		id:         uuid.New(),
		name:       name,
		securities: make(map[string]*Security),
	}
}

// ID returns the portfolio's unique identifier.
func (p *Portfolio) ID() uuid.UUID { return p.id }

// Name returns the portfolio's name.
func (p *Portfolio) Name() string { return p.name }

// AddStock records a purchase. The first buy of a symbol creates its
// Security; later buys append to the existing ledger. A second buy of the
// same symbol on the same date is rejected as a duplicate.
func (p *Portfolio) AddStock(symbol string, quantity int64, day date.Date, price decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sec, ok := p.securities[symbol]
	if ok && sec.hasBuyOn(day) {
		return fmt.Errorf("%s already bought on %s in portfolio %q: %w",
			symbol, day, p.name, ErrDuplicateTransaction)
	}
	if !ok {
		sec = newSecurity(symbol)
	}
	if err := sec.buy(quantity, day, price); err != nil {
		return err
	}
	p.securities[symbol] = sec
	return nil
}

// SellStock records a sale against the symbol's ledger. Selling a symbol the
// portfolio never held fails with ErrSymbolNotFound.
func (p *Portfolio) SellStock(symbol string, quantity int64, day date.Date, price decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sec, ok := p.securities[symbol]
	if !ok {
		return fmt.Errorf("%s in portfolio %q: %w", symbol, p.name, ErrSymbolNotFound)
	}
	return sec.sell(quantity, day, price)
}

// snapshot returns the securities under a read lock. Appends never write to
// a previously published record slice, so the returned slice headers stay
// consistent after the lock is released.
func (p *Portfolio) snapshot() []*Security {
	p.mu.RLock()
	defer p.mu.RUnlock()
	secs := make([]*Security, 0, len(p.securities))
	for _, symbol := range slices.Sorted(maps.Keys(p.securities)) {
		sec := p.securities[symbol]
		secs = append(secs, &Security{symbol: sec.symbol, records: sec.records[:len(sec.records):len(sec.records)]})
	}
	return secs
}

// ValueOn returns the total market value of the portfolio on the given day.
// Securities fully sold by that day contribute zero, not an error.
func (p *Portfolio) ValueOn(ctx context.Context, day date.Date, cache *PriceCache) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, sec := range p.snapshot() {
		if sec.QuantityAt(day) == 0 {
			continue
		}
		value, err := sec.ValueAt(ctx, day, cache)
		if err != nil {
			return decimal.Zero, fmt.Errorf("valuing %s: %w", sec.Symbol(), err)
		}
		total = total.Add(value)
	}
	return total, nil
}

// InvestmentOn returns the net cash committed to the portfolio up to the
// given day, summed over all securities.
func (p *Portfolio) InvestmentOn(day date.Date) decimal.Decimal {
	total := decimal.Zero
	for _, sec := range p.snapshot() {
		total = total.Add(sec.InvestmentAt(day))
	}
	return total
}

// Symbols returns the sorted symbols ever held by the portfolio.
func (p *Portfolio) Symbols() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.securities))
}

// Quantity returns the shares of symbol held on the given day, zero when the
// symbol was never held. The records field is only safe to read under the
// lock, so the fold runs before it is released.
func (p *Portfolio) Quantity(symbol string, day date.Date) int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sec, ok := p.securities[symbol]
	if !ok {
		return 0
	}
	return sec.QuantityAt(day)
}

// History returns a copy of the symbol's transaction records and whether the
// symbol was ever held.
func (p *Portfolio) History(symbol string) ([]Transaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sec, ok := p.securities[symbol]
	if !ok {
		return nil, false
	}
	return sec.History(), true
}
