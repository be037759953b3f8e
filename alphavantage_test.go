package stockfolio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const dailySeriesBody = `{
  "Meta Data": {"2. Symbol": "AAPL"},
  "Time Series (Daily)": {
    "2024-02-05": {"1. open": "100.25", "2. high": "107", "3. low": "99", "4. close": "105.5", "5. volume": "1000"},
    "2024-02-06": {"1. open": "106", "2. high": "112", "3. low": "105", "4. close": "110", "5. volume": "1200"}
  }
}`

func newTestAlphaVantage(t *testing.T, handler http.HandlerFunc) *AlphaVantage {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	av := NewAlphaVantage("demo", zerolog.Nop())
	av.baseURL = srv.URL
	return av
}

func TestAlphaVantageFetch(t *testing.T) {
	var hits atomic.Int32
	av := newTestAlphaVantage(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.URL.Query().Get("function"); got != "TIME_SERIES_DAILY" {
			t.Errorf("function = %q", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q", got)
		}
		w.Write([]byte(dailySeriesBody))
	})

	ctx := context.Background()
	q, err := av.Fetch(ctx, "aapl", on("2024-02-05"))
	if err != nil {
		t.Fatal(err)
	}
	if !q.Open.Equal(d("100.25")) || !q.Close.Equal(d("105.5")) {
		t.Errorf("quote = %+v", q)
	}

	// Second day of the same symbol is served from the fetched series.
	if _, err := av.Fetch(ctx, "AAPL", on("2024-02-06")); err != nil {
		t.Fatal(err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("upstream hit %d times, want 1", got)
	}

	// A day missing from the series is ErrNoQuote, still without a new call.
	if _, err := av.Fetch(ctx, "AAPL", on("2024-02-07")); !errors.Is(err, ErrNoQuote) {
		t.Errorf("missing day = %v, want ErrNoQuote", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("upstream hit %d times, want 1", got)
	}
}

func TestAlphaVantageConcurrentMissesShareOneSeriesFetch(t *testing.T) {
	var hits atomic.Int32
	av := newTestAlphaVantage(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		time.Sleep(20 * time.Millisecond) // let the misses overlap
		w.Write([]byte(dailySeriesBody))
	})

	ctx := context.Background()
	var wg sync.WaitGroup
	for _, day := range []string{"2024-02-05", "2024-02-06"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := av.Fetch(ctx, "AAPL", on(day))
			if err != nil {
				t.Error(err)
				return
			}
			if q.Close.IsZero() {
				t.Errorf("zero close for %s", day)
			}
		}()
	}
	wg.Wait()

	if got := hits.Load(); got != 1 {
		t.Errorf("upstream hit %d times, want 1", got)
	}
}

func TestAlphaVantageUnknownSymbol(t *testing.T) {
	av := newTestAlphaVantage(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call."}`))
	})
	if _, err := av.Fetch(context.Background(), "NOPE", on("2024-02-05")); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("unknown symbol = %v, want ErrPriceUnavailable", err)
	}
}

func TestAlphaVantageRateLimited(t *testing.T) {
	av := newTestAlphaVantage(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"Note": "API call frequency is 5 calls per minute."}`))
	})
	if _, err := av.Fetch(context.Background(), "AAPL", on("2024-02-05")); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("rate limited = %v, want ErrPriceUnavailable", err)
	}
}

func TestAlphaVantageHTTPError(t *testing.T) {
	av := newTestAlphaVantage(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := av.Fetch(context.Background(), "AAPL", on("2024-02-05")); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("http 502 = %v, want ErrPriceUnavailable", err)
	}
}

func TestAlphaVantageEmptySymbol(t *testing.T) {
	av := NewAlphaVantage("demo", zerolog.Nop())
	if _, err := av.Fetch(context.Background(), "  ", on("2024-02-05")); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("empty symbol = %v, want ErrPriceUnavailable", err)
	}
}
