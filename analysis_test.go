package stockfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/date"
)

func TestMovingAverage(t *testing.T) {
	cache, src := newTestCache()
	src.set("AAPL", on("2024-02-01"), "99", "100")  // Thursday
	src.set("AAPL", on("2024-02-02"), "101", "110") // Friday
	src.set("AAPL", on("2024-02-05"), "111", "120") // Monday
	a := NewAnalysis(cache)
	ctx := context.Background()

	avg, err := a.MovingAverage(ctx, "AAPL", on("2024-02-05"), 3)
	require.NoError(t, err)
	assert.True(t, avg.Equal(d("110")), "avg = %s", avg)

	avg, err = a.MovingAverage(ctx, "AAPL", on("2024-02-05"), 1)
	require.NoError(t, err)
	assert.True(t, avg.Equal(d("120")), "avg = %s", avg)
}

func TestMovingAverageSkipsWeekends(t *testing.T) {
	cache, src := newTestCache()
	src.set("AAPL", on("2024-02-01"), "99", "100")
	src.set("AAPL", on("2024-02-02"), "101", "110")
	a := NewAnalysis(cache)

	// Sunday ends the window; it covers Friday and Thursday, not Sat/Sun.
	avg, err := a.MovingAverage(context.Background(), "AAPL", on("2024-02-04"), 2)
	require.NoError(t, err)
	assert.True(t, avg.Equal(d("105")), "avg = %s", avg)
}

func TestMovingAverageInvalidWindow(t *testing.T) {
	cache, _ := newTestCache()
	a := NewAnalysis(cache)

	for _, window := range []int{0, -5} {
		_, err := a.MovingAverage(context.Background(), "AAPL", on("2024-02-05"), window)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "window %d", window)
	}
}

func TestCrossovers(t *testing.T) {
	cache, src := newTestCache()
	src.set("AAPL", on("2024-02-01"), "100", "105") // up
	src.set("AAPL", on("2024-02-02"), "105", "101") // down
	src.set("AAPL", on("2024-02-05"), "101", "101") // flat: not a crossover
	src.set("AAPL", on("2024-02-06"), "101", "108") // up
	a := NewAnalysis(cache)

	r := date.NewRange(on("2024-02-01"), on("2024-02-06"))
	var got []date.Date
	for day, err := range a.Crossovers(context.Background(), "AAPL", r) {
		require.NoError(t, err)
		got = append(got, day)
	}
	assert.Equal(t, []date.Date{on("2024-02-01"), on("2024-02-06")}, got)
}

func TestCrossoversPropagatesPriceFailure(t *testing.T) {
	cache, _ := newTestCache()
	a := NewAnalysis(cache)

	r := date.NewRange(on("2024-02-01"), on("2024-02-02"))
	var firstErr error
	count := 0
	for _, err := range a.Crossovers(context.Background(), "NOPE", r) {
		count++
		firstErr = err
	}
	assert.Equal(t, 1, count, "sequence must stop after yielding the error")
	assert.ErrorIs(t, firstErr, ErrPriceUnavailable)
}

func TestMovingCrossoversInvalidPeriods(t *testing.T) {
	cache, _ := newTestCache()
	a := NewAnalysis(cache)
	r := date.NewRange(on("2024-02-05"), on("2024-02-09"))

	tests := []struct {
		name        string
		short, long int
	}{
		{"zero short", 0, 10},
		{"negative short", -1, 10},
		{"short equals long", 10, 10},
		{"short above long", 20, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.MovingCrossovers(context.Background(), "AAPL", r, tc.short, tc.long)
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}

func TestMovingCrossoversSignals(t *testing.T) {
	cache, src := newTestCache()
	// Closes chosen so the 1-day average repeatedly crosses the 2-day one.
	src.set("AAPL", on("2024-02-01"), "10", "10")
	src.set("AAPL", on("2024-02-02"), "10", "10")
	src.set("AAPL", on("2024-02-05"), "20", "20")
	src.set("AAPL", on("2024-02-06"), "20", "20")
	src.set("AAPL", on("2024-02-07"), "30", "30")
	src.set("AAPL", on("2024-02-08"), "30", "30")
	src.set("AAPL", on("2024-02-09"), "10", "10")
	a := NewAnalysis(cache)

	r := date.NewRange(on("2024-02-05"), on("2024-02-09"))
	seq, err := a.MovingCrossovers(context.Background(), "AAPL", r, 1, 2)
	require.NoError(t, err)

	var got []Signal
	for sig, err := range seq {
		require.NoError(t, err)
		got = append(got, sig)
	}

	// Feb 5 crosses up, Feb 6 levels off (equal counts as not-above), Feb 7
	// crosses up again, Feb 8 levels off. Feb 9 drops but the relation was
	// already not-above, so it emits nothing.
	want := []Signal{
		{Day: on("2024-02-05"), Action: ActionBuy},
		{Day: on("2024-02-06"), Action: ActionSell},
		{Day: on("2024-02-07"), Action: ActionBuy},
		{Day: on("2024-02-08"), Action: ActionSell},
	}
	assert.Equal(t, want, got)
}

func TestMovingCrossoversNoChangeNoSignal(t *testing.T) {
	cache, src := newTestCache()
	for _, day := range []string{"2024-02-01", "2024-02-02", "2024-02-05", "2024-02-06", "2024-02-07"} {
		src.set("AAPL", on(day), "10", "10")
	}
	a := NewAnalysis(cache)

	r := date.NewRange(on("2024-02-05"), on("2024-02-07"))
	seq, err := a.MovingCrossovers(context.Background(), "AAPL", r, 1, 2)
	require.NoError(t, err)

	count := 0
	for _, err := range seq {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 0, count)
}
