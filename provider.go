package stockfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"stockfolio/date"
)

// SourceFunc adapts a plain function to the PriceSource interface.
type SourceFunc func(ctx context.Context, symbol string, day date.Date) (Quote, error)

// Fetch implements PriceSource.
func (f SourceFunc) Fetch(ctx context.Context, symbol string, day date.Date) (Quote, error) {
	return f(ctx, symbol, day)
}

// throttledSource delays fetches to respect the upstream rate limit.
type throttledSource struct {
	src     PriceSource
	limiter *rate.Limiter
}

// NewThrottledSource wraps a source with a token-bucket rate limiter of
// perMinute requests per minute. Waiting respects the caller's context.
func NewThrottledSource(src PriceSource, perMinute int) PriceSource {
	if perMinute <= 0 {
		return src
	}
	return &throttledSource{
		src:     src,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
	}
}

func (t *throttledSource) Fetch(ctx context.Context, symbol string, day date.Date) (Quote, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return Quote{}, fmt.Errorf("rate limit wait: %w: %w", ErrPriceUnavailable, err)
	}
	return t.src.Fetch(ctx, symbol, day)
}

// breakerSource opens after consecutive upstream failures so a dead source
// fails fast instead of burning the per-fetch timeout on every call.
type breakerSource struct {
	src PriceSource
	cb  *gobreaker.CircuitBreaker
	log zerolog.Logger
}

// NewBreakerSource wraps a source with a circuit breaker tripping after five
// consecutive network-level failures. ErrNoQuote does not count as a failure:
// a missing day is an answer, not an outage.
func NewBreakerSource(src PriceSource, logger zerolog.Logger) PriceSource {
	st := gobreaker.Settings{Name: "price-source"}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= 5 }
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		logger.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).
			Msg("price source breaker state change")
	}
	return &breakerSource{src: src, cb: gobreaker.NewCircuitBreaker(st), log: logger}
}

func (b *breakerSource) Fetch(ctx context.Context, symbol string, day date.Date) (Quote, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		q, err := b.src.Fetch(ctx, symbol, day)
		if errors.Is(err, ErrNoQuote) {
			// Successful call from the breaker's point of view.
			return quoteResult{q: q, err: err}, nil
		}
		if err != nil {
			return nil, err
		}
		return quoteResult{q: q}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Quote{}, fmt.Errorf("fetch %s on %s: %w: %w", symbol, day, ErrPriceUnavailable, err)
		}
		return Quote{}, err
	}
	res := v.(quoteResult)
	return res.q, res.err
}

type quoteResult struct {
	q   Quote
	err error
}
