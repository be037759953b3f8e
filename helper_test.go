package stockfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// d parses a decimal literal, panicking on malformed test data.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// on parses a test date literal.
func on(s string) date.Date { return date.MustParse(s) }

// stubSource is an in-memory PriceSource that records every fetch. Symbols
// are "known" once they have at least one quote; fetching a known symbol on
// an unquoted day yields ErrNoQuote, an unknown symbol ErrPriceUnavailable.
type stubSource struct {
	delay time.Duration // applied outside the lock, to overlap fetches

	mu     sync.Mutex
	quotes map[string]Quote
	known  map[string]bool
	calls  map[string]int
	total  int
}

func newStubSource() *stubSource {
	return &stubSource{
		quotes: make(map[string]Quote),
		known:  make(map[string]bool),
		calls:  make(map[string]int),
	}
}

func (s *stubSource) set(symbol string, day date.Date, open, close string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[symbol+"|"+day.String()] = Quote{Open: d(open), Close: d(close)}
	s.known[symbol] = true
}

// know marks a symbol as known without giving it any quote.
func (s *stubSource) know(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known[symbol] = true
}

func (s *stubSource) Fetch(_ context.Context, symbol string, day date.Date) (Quote, error) {
	s.mu.Lock()
	key := symbol + "|" + day.String()
	s.calls[key]++
	s.total++
	q, ok := s.quotes[key]
	known := s.known[symbol]
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if ok {
		return q, nil
	}
	if known {
		return Quote{}, fmt.Errorf("%s on %s: %w", symbol, day, ErrNoQuote)
	}
	return Quote{}, fmt.Errorf("%s: %w", symbol, ErrPriceUnavailable)
}

// fetches returns how many times the given (symbol, day) was fetched.
func (s *stubSource) fetches(symbol string, day date.Date) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[symbol+"|"+day.String()]
}

// totalFetches returns the total number of source calls.
func (s *stubSource) totalFetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// newTestCache returns a cache over a fresh stub source.
func newTestCache() (*PriceCache, *stubSource) {
	src := newStubSource()
	return NewPriceCache(src, time.Second), src
}
