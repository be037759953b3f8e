package stockfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"stockfolio/date"
)

// Quote holds the open and close prices of a symbol for one trading day.
type Quote struct {
	Open  decimal.Decimal
	Close decimal.Decimal
}

// PriceSource is the external collaborator quotes are fetched from.
//
// Fetch returns the quote of the symbol for the given day. It returns an
// error wrapping ErrNoQuote when the symbol is known but the day has no data
// (market holiday, too recent), and an error wrapping ErrPriceUnavailable
// when the symbol is unknown or the source cannot be reached.
type PriceSource interface {
	Fetch(ctx context.Context, symbol string, day date.Date) (Quote, error)
}

// maxFallbackDays bounds the backward walk from a requested date to the most
// recent prior close. Ten calendar days absorb any weekend/holiday cluster.
const maxFallbackDays = 10

// defaultFetchTimeout bounds a single source fetch.
const defaultFetchTimeout = 10 * time.Second

// PriceEntry is a plain record of one memoized quote, used by the
// persistence collaborator.
type PriceEntry struct {
	Symbol string          `json:"symbol"`
	Day    date.Date       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	Close  decimal.Decimal `json:"close"`
}

type quoteKey struct {
	symbol string
	day    date.Date
}

// PriceCache lazily memoizes quotes per (symbol, requested date). Entries are
// immutable once stored and never evicted within a run.
//
// Weekend dates resolve to the most recent prior weekday's quote; the cache
// key stays the requested date. A weekday the source has no data for (market
// holiday, which the calendar does not model) falls back the same way,
// bounded at maxFallbackDays.
//
// Concurrent misses on the same key trigger exactly one source fetch;
// unrelated keys never serialize on each other.
type PriceCache struct {
	source  PriceSource
	timeout time.Duration

	mu     sync.RWMutex
	quotes map[quoteKey]Quote
	group  singleflight.Group
}

// NewPriceCache returns an empty cache backed by the given source. A
// non-positive timeout falls back to the default bound of 10s per fetch.
func NewPriceCache(source PriceSource, timeout time.Duration) *PriceCache {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &PriceCache{
		source:  source,
		timeout: timeout,
		quotes:  make(map[quoteKey]Quote),
	}
}

// PriceOn returns the close price of the symbol for the given date, applying
// the trading-day fallback for weekends and unquoted weekdays.
func (c *PriceCache) PriceOn(ctx context.Context, symbol string, day date.Date) (decimal.Decimal, error) {
	q, err := c.QuoteOn(ctx, symbol, day)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Close, nil
}

// OpenOn returns the open price of the symbol for the given date, with the
// same fallback rules as PriceOn.
func (c *PriceCache) OpenOn(ctx context.Context, symbol string, day date.Date) (decimal.Decimal, error) {
	q, err := c.QuoteOn(ctx, symbol, day)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Open, nil
}

// PreviousClose returns the close strictly before the given date, skipping
// weekends.
func (c *PriceCache) PreviousClose(ctx context.Context, symbol string, day date.Date) (decimal.Decimal, error) {
	return c.PriceOn(ctx, symbol, day.PreviousTradingDay())
}

// QuoteOn returns the memoized quote for (symbol, day), fetching it from the
// source on first access.
func (c *PriceCache) QuoteOn(ctx context.Context, symbol string, day date.Date) (Quote, error) {
	key := quoteKey{symbol: symbol, day: day}

	c.mu.RLock()
	q, ok := c.quotes[key]
	c.mu.RUnlock()
	if ok {
		return q, nil
	}

	// Per-key acquisition: concurrent misses on this key share one fetch,
	// other keys proceed independently.
	v, err, _ := c.group.Do(symbol+"|"+day.String(), func() (any, error) {
		c.mu.RLock()
		q, ok := c.quotes[key]
		c.mu.RUnlock()
		if ok {
			return q, nil
		}
		q, err := c.resolve(ctx, symbol, day)
		if err != nil {
			return Quote{}, err
		}
		c.mu.Lock()
		c.quotes[key] = q
		c.mu.Unlock()
		return q, nil
	})
	if err != nil {
		return Quote{}, err
	}
	return v.(Quote), nil
}

// resolve fetches the effective quote for a requested date: the date itself
// when quoted, otherwise the most recent prior weekday's quote.
func (c *PriceCache) resolve(ctx context.Context, symbol string, day date.Date) (Quote, error) {
	oldest := day.Add(-maxFallbackDays)
	for eff := day.NearestTradingDay(); !eff.Before(oldest); eff = eff.PreviousTradingDay() {
		q, err := c.fetch(ctx, symbol, eff)
		if err == nil {
			return q, nil
		}
		if errors.Is(err, ErrNoQuote) {
			continue
		}
		return Quote{}, err
	}
	return Quote{}, fmt.Errorf("no close for %s within %d days before %s: %w",
		symbol, maxFallbackDays, day, ErrPriceUnavailable)
}

// fetch performs one bounded source call.
func (c *PriceCache) fetch(ctx context.Context, symbol string, day date.Date) (Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q, err := c.source.Fetch(ctx, symbol, day)
	if err == nil {
		return q, nil
	}
	if errors.Is(err, ErrNoQuote) || errors.Is(err, ErrPriceUnavailable) {
		return Quote{}, err
	}
	// Network-level failures (timeouts included) surface as unavailable.
	return Quote{}, fmt.Errorf("fetch %s on %s: %w: %w", symbol, day, ErrPriceUnavailable, err)
}

// Len returns the number of memoized entries.
func (c *PriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.quotes)
}

// Entries returns a copy of all memoized quotes, sorted by symbol then date,
// for the persistence collaborator.
func (c *PriceCache) Entries() []PriceEntry {
	c.mu.RLock()
	entries := make([]PriceEntry, 0, len(c.quotes))
	for key, q := range c.quotes {
		entries = append(entries, PriceEntry{Symbol: key.symbol, Day: key.day, Open: q.Open, Close: q.Close})
	}
	c.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Symbol != entries[j].Symbol {
			return entries[i].Symbol < entries[j].Symbol
		}
		return entries[i].Day.Before(entries[j].Day)
	})
	return entries
}

// Restore seeds the cache with persisted entries. Existing keys are kept:
// a price fetched for a (symbol, date) never changes.
func (c *PriceCache) Restore(entries []PriceEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		key := quoteKey{symbol: e.Symbol, day: e.Day}
		if _, ok := c.quotes[key]; ok {
			continue
		}
		c.quotes[key] = Quote{Open: e.Open, Close: e.Close}
	}
}
