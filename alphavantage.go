package stockfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"stockfolio/date"
)

const alphaVantageURL = "https://www.alphavantage.co/query"

// AlphaVantage fetches daily quotes from the Alpha Vantage TIME_SERIES_DAILY
// endpoint. One HTTP call returns the recent daily series for a symbol, so
// the series is kept per symbol and individual days are served from it.
type AlphaVantage struct {
	apiKey  string
	client  *http.Client
	baseURL string
	log     zerolog.Logger

	mu     sync.Mutex
	series map[string]map[date.Date]Quote
	group  singleflight.Group
}

// NewAlphaVantage returns a source using the given API key.
func NewAlphaVantage(apiKey string, logger zerolog.Logger) *AlphaVantage {
	return &AlphaVantage{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 8 * time.Second},
		baseURL: alphaVantageURL,
		log:     logger,
		series:  make(map[string]map[date.Date]Quote),
	}
}

// Fetch implements PriceSource.
func (p *AlphaVantage) Fetch(ctx context.Context, symbol string, day date.Date) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, fmt.Errorf("empty symbol: %w", ErrPriceUnavailable)
	}

	// One HTTP call serves every day of a symbol, so concurrent misses on
	// different days must share a single series fetch.
	v, err, _ := p.group.Do(symbol, func() (any, error) {
		p.mu.Lock()
		days, ok := p.series[symbol]
		p.mu.Unlock()
		if ok {
			return days, nil
		}
		days, err := p.daily(ctx, symbol)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.series[symbol] = days
		p.mu.Unlock()
		return days, nil
	})
	if err != nil {
		return Quote{}, err
	}

	if q, ok := v.(map[date.Date]Quote)[day]; ok {
		return q, nil
	}
	return Quote{}, fmt.Errorf("%s on %s: %w", symbol, day, ErrNoQuote)
}

// daily fetches the full daily series for a symbol.
func (p *AlphaVantage) daily(ctx context.Context, symbol string) (map[date.Date]Quote, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("outputsize", "full")
	q.Set("apikey", p.apiKey)
	addr := p.baseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "stockfolio/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	p.log.Debug().Str("symbol", symbol).Str("status", resp.Status).Msg("alphavantage daily series")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage http %d: %w", resp.StatusCode, ErrPriceUnavailable)
	}

	var raw struct {
		Note        string                       `json:"Note"`
		Information string                       `json:"Information"`
		ErrMsg      string                       `json:"Error Message"`
		Series      map[string]map[string]string `json:"Time Series (Daily)"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if raw.Note != "" || raw.Information != "" {
		return nil, fmt.Errorf("alphavantage rate limited: %w", ErrPriceUnavailable)
	}
	if raw.ErrMsg != "" || len(raw.Series) == 0 {
		return nil, fmt.Errorf("alphavantage has no data for %q: %w", symbol, ErrPriceUnavailable)
	}

	days := make(map[date.Date]Quote, len(raw.Series))
	for dayStr, fields := range raw.Series {
		day, err := date.Parse(dayStr)
		if err != nil {
			return nil, fmt.Errorf("alphavantage series for %s: %w", symbol, err)
		}
		open, err := decimal.NewFromString(fields["1. open"])
		if err != nil {
			return nil, fmt.Errorf("alphavantage open for %s on %s: %w", symbol, day, err)
		}
		close, err := decimal.NewFromString(fields["4. close"])
		if err != nil {
			return nil, fmt.Errorf("alphavantage close for %s on %s: %w", symbol, day, err)
		}
		days[day] = Quote{Open: open, Close: close}
	}
	return days, nil
}
