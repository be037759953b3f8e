package stockfolio

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// Service is the owning registry of portfolios. Portfolio names are unique
// case-insensitively; all valuation and mutation entry points live here and
// share one explicitly constructed PriceCache.
type Service struct {
	cache *PriceCache
	log   zerolog.Logger

	mu         sync.RWMutex
	portfolios map[string]*Portfolio // keyed by folded name
}

// NewService returns an empty service backed by the given price cache.
func NewService(cache *PriceCache, logger zerolog.Logger) *Service {
	return &Service{
		cache:      cache,
		log:        logger,
		portfolios: make(map[string]*Portfolio),
	}
}

// Cache returns the price cache the service was constructed with.
func (s *Service) Cache() *PriceCache { return s.cache }

func foldName(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

func foldSymbol(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// Create adds a new named portfolio. An empty name or a name already taken
// (case-insensitively) fails without side effects.
func (s *Service) Create(name string) (*Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := foldName(name)
	if _, ok := s.portfolios[key]; ok {
		return nil, fmt.Errorf("%q: %w", name, ErrPortfolioExists)
	}
	p := NewPortfolio(name)
	s.portfolios[key] = p
	s.log.Info().Str("portfolio", name).Str("id", p.ID().String()).Msg("portfolio created")
	return p, nil
}

// Get returns the portfolio with the given name, matched case-insensitively.
func (s *Service) Get(name string) (*Portfolio, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.portfolios[foldName(name)]
	return p, ok
}

// Delete removes the named portfolio and everything it owns.
func (s *Service) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := foldName(name)
	if _, ok := s.portfolios[key]; !ok {
		return fmt.Errorf("%q: %w", name, ErrPortfolioNotFound)
	}
	delete(s.portfolios, key)
	s.log.Info().Str("portfolio", name).Msg("portfolio deleted")
	return nil
}

// Names returns the portfolio names, sorted.
func (s *Service) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.portfolios))
	for _, p := range s.portfolios {
		names = append(names, p.Name())
	}
	slices.Sort(names)
	return names
}

// Len returns the number of portfolios.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.portfolios)
}

// BuyStock fetches the close price for (symbol, day) and records a purchase
// in the named portfolio. Purchase dates are restricted to weekdays at this
// entry point; the ledger itself accepts any non-future date.
func (s *Service) BuyStock(ctx context.Context, portfolio, symbol string, quantity int64, day date.Date) error {
	p, ok := s.Get(portfolio)
	if !ok {
		return fmt.Errorf("%q: %w", portfolio, ErrPortfolioNotFound)
	}
	symbol = foldSymbol(symbol)
	if quantity <= 0 {
		return fmt.Errorf("buy %s: got %d: %w", symbol, quantity, ErrInvalidQuantity)
	}
	if day.After(date.Today()) {
		return fmt.Errorf("buy %s on %s: %w", symbol, day, ErrFutureDate)
	}
	if day.IsWeekend() {
		return fmt.Errorf("buy %s on %s (%s): %w", symbol, day, day.Weekday(), ErrNonWeekday)
	}

	price, err := s.cache.PriceOn(ctx, symbol, day)
	if err != nil {
		return err
	}
	if err := p.AddStock(symbol, quantity, day, price); err != nil {
		return err
	}
	s.log.Info().Str("portfolio", p.Name()).Str("symbol", symbol).
		Int64("quantity", quantity).Stringer("date", day).Stringer("price", price).
		Msg("buy recorded")
	return nil
}

// SellStock fetches the close price for (symbol, day) and records a sale in
// the named portfolio. Weekend sale dates price at the prior close.
func (s *Service) SellStock(ctx context.Context, portfolio, symbol string, quantity int64, day date.Date) error {
	p, ok := s.Get(portfolio)
	if !ok {
		return fmt.Errorf("%q: %w", portfolio, ErrPortfolioNotFound)
	}
	symbol = foldSymbol(symbol)
	if quantity <= 0 {
		return fmt.Errorf("sell %s: got %d: %w", symbol, quantity, ErrInvalidQuantity)
	}
	if day.After(date.Today()) {
		return fmt.Errorf("sell %s on %s: %w", symbol, day, ErrFutureDate)
	}
	if _, held := p.History(symbol); !held {
		return fmt.Errorf("%s in portfolio %q: %w", symbol, p.Name(), ErrSymbolNotFound)
	}

	price, err := s.cache.PriceOn(ctx, symbol, day)
	if err != nil {
		return err
	}
	if err := p.SellStock(symbol, quantity, day, price); err != nil {
		return err
	}
	s.log.Info().Str("portfolio", p.Name()).Str("symbol", symbol).
		Int64("quantity", quantity).Stringer("date", day).Stringer("price", price).
		Msg("sell recorded")
	return nil
}

// ValueOn returns the total market value of the named portfolio on the given
// day. Weekend dates are valued at the prior Friday's closes.
func (s *Service) ValueOn(ctx context.Context, portfolio string, day date.Date) (decimal.Decimal, error) {
	if day.After(date.Today()) {
		return decimal.Zero, fmt.Errorf("value on %s: %w", day, ErrFutureDate)
	}
	p, ok := s.Get(portfolio)
	if !ok {
		return decimal.Zero, fmt.Errorf("%q: %w", portfolio, ErrPortfolioNotFound)
	}
	return p.ValueOn(ctx, day, s.cache)
}

// InvestmentOn returns the net cash committed to the named portfolio up to
// the given day.
func (s *Service) InvestmentOn(portfolio string, day date.Date) (decimal.Decimal, error) {
	p, ok := s.Get(portfolio)
	if !ok {
		return decimal.Zero, fmt.Errorf("%q: %w", portfolio, ErrPortfolioNotFound)
	}
	return p.InvestmentOn(day), nil
}

// Quantity returns the shares of symbol held by the named portfolio on the
// given day.
func (s *Service) Quantity(portfolio, symbol string, day date.Date) (int64, error) {
	p, ok := s.Get(portfolio)
	if !ok {
		return 0, fmt.Errorf("%q: %w", portfolio, ErrPortfolioNotFound)
	}
	return p.Quantity(foldSymbol(symbol), day), nil
}

// portfoliosSorted returns the portfolios sorted by folded name.
func (s *Service) portfoliosSorted() []*Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Portfolio, 0, len(s.portfolios))
	for _, key := range slices.Sorted(maps.Keys(s.portfolios)) {
		out = append(out, s.portfolios[key])
	}
	return out
}
