package stockfolio

import (
	"context"
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// Action classifies a moving-average crossover signal.
type Action string

const (
	// ActionBuy marks an upward cross: the short average moved above the long one.
	ActionBuy Action = "BUY"
	// ActionSell marks a downward cross: the short average dropped back to or
	// below the long one.
	ActionSell Action = "SELL"
)

// Signal is one dated moving-crossover classification.
type Signal struct {
	Day    date.Date
	Action Action
}

// Analysis derives time-series analytics over close prices. It holds no
// state of its own; every price goes through the shared cache.
type Analysis struct {
	cache *PriceCache
}

// NewAnalysis returns an analysis engine reading prices from the given cache.
func NewAnalysis(cache *PriceCache) *Analysis {
	return &Analysis{cache: cache}
}

// MovingAverage returns the mean close price over the window most recent
// trading days ending at or before end. Weekends are skipped when selecting
// the window, not counted as zero-weight days.
func (a *Analysis) MovingAverage(ctx context.Context, symbol string, end date.Date, window int) (decimal.Decimal, error) {
	if window < 1 {
		return decimal.Zero, fmt.Errorf("moving average window %d: %w", window, ErrInvalidPeriod)
	}
	sum := decimal.Zero
	for _, day := range date.TradingDaysBack(end, window) {
		price, err := a.cache.PriceOn(ctx, symbol, day)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(price)
	}
	return sum.Div(decimal.NewFromInt(int64(window))), nil
}

// Crossovers returns a lazy ordered sequence of the trading days in the
// inclusive range whose close price exceeds the open price. The sequence is
// finite and restartable; on a price failure it yields the error once and
// stops.
func (a *Analysis) Crossovers(ctx context.Context, symbol string, r date.Range) iter.Seq2[date.Date, error] {
	return func(yield func(date.Date, error) bool) {
		for day := range r.TradingDays() {
			q, err := a.cache.QuoteOn(ctx, symbol, day)
			if err != nil {
				yield(date.Date{}, err)
				return
			}
			if !q.Close.GreaterThan(q.Open) {
				continue
			}
			if !yield(day, nil) {
				return
			}
		}
	}
}

// MovingCrossovers classifies dual-moving-average crossovers for each trading
// day in the inclusive range. A day emits a BUY signal when the short average
// moves above the long one and the relation did not hold on the previous
// trading day, and a SELL signal on the symmetric downward cross. Days
// without a sign change emit nothing; equal averages count as not-above.
//
// The period pair is validated eagerly: shortPeriod must be positive and
// strictly smaller than longPeriod.
func (a *Analysis) MovingCrossovers(ctx context.Context, symbol string, r date.Range, shortPeriod, longPeriod int) (iter.Seq2[Signal, error], error) {
	if shortPeriod < 1 || shortPeriod >= longPeriod {
		return nil, fmt.Errorf("short period %d, long period %d: %w", shortPeriod, longPeriod, ErrInvalidPeriod)
	}

	return func(yield func(Signal, error) bool) {
		started := false
		var prevAbove bool
		for day := range r.TradingDays() {
			if !started {
				// Seed the relation from the trading day before the range so
				// a cross on the first day is still detected.
				above, err := a.aboveOn(ctx, symbol, day.PreviousTradingDay(), shortPeriod, longPeriod)
				if err != nil {
					yield(Signal{}, err)
					return
				}
				prevAbove = above
				started = true
			}

			above, err := a.aboveOn(ctx, symbol, day, shortPeriod, longPeriod)
			if err != nil {
				yield(Signal{}, err)
				return
			}
			if above != prevAbove {
				action := ActionSell
				if above {
					action = ActionBuy
				}
				if !yield(Signal{Day: day, Action: action}, nil) {
					return
				}
			}
			prevAbove = above
		}
	}, nil
}

// aboveOn reports whether the short moving average exceeds the long one on
// the given day.
func (a *Analysis) aboveOn(ctx context.Context, symbol string, day date.Date, shortPeriod, longPeriod int) (bool, error) {
	short, err := a.MovingAverage(ctx, symbol, day, shortPeriod)
	if err != nil {
		return false, err
	}
	long, err := a.MovingAverage(ctx, symbol, day, longPeriod)
	if err != nil {
		return false, err
	}
	return short.GreaterThan(long), nil
}
