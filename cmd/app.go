// Package cmd implements the sfo command line, a thin shell over the
// portfolio service: it loads state, runs one subcommand, and saves state
// back. The core never formats output or touches files itself.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"stockfolio"
	"stockfolio/store"
)

var configPath = flag.String("config", defaultConfigPath(), "Path to the sfo configuration file (TOML)")
var verbose = flag.Bool("v", false, "Enable debug logging")

// Register registers all subcommands on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "portfolios")
	c.Register(&deleteCmd{}, "portfolios")
	c.Register(&listCmd{}, "portfolios")
	c.Register(&holdingsCmd{}, "portfolios")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")

	c.Register(&valueCmd{}, "valuation")
	c.Register(&investmentCmd{}, "valuation")

	c.Register(&averageCmd{}, "analysis")
	c.Register(&crossoversCmd{}, "analysis")
	c.Register(&signalsCmd{}, "analysis")

	c.Register(&exportCmd{}, "state")
	c.Register(&importCmd{}, "state")
}

// app bundles everything a subcommand needs for one run.
type app struct {
	cfg      Config
	log      zerolog.Logger
	db       *store.DB
	service  *stockfolio.Service
	analysis *stockfolio.Analysis
}

// openApp loads the configuration, opens the store, and rebuilds the service
// and analysis engine from persisted state.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	db, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.DatabasePath, err)
	}

	var source stockfolio.PriceSource = stockfolio.NewAlphaVantage(cfg.APIKey, logger)
	source = stockfolio.NewThrottledSource(source, cfg.RatePerMinute)
	source = stockfolio.NewBreakerSource(source, logger)

	cache := stockfolio.NewPriceCache(source, cfg.FetchTimeout())
	entries, err := db.LoadPrices(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading prices: %w", err)
	}
	cache.Restore(entries)

	service := stockfolio.NewService(cache, logger)
	state, err := db.LoadState(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading state: %w", err)
	}
	if err := service.ImportState(state); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("restoring state: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      logger,
		db:       db,
		service:  service,
		analysis: stockfolio.NewAnalysis(cache),
	}, nil
}

// close persists the current state and price cache, then closes the store.
func (a *app) close(ctx context.Context) error {
	if err := a.db.SaveState(ctx, a.service.ExportState()); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	if err := a.db.SavePrices(ctx, a.service.Cache().Entries()); err != nil {
		return fmt.Errorf("saving prices: %w", err)
	}
	return a.db.Close()
}

// run wraps the open/do/close cycle shared by all subcommands.
func run(ctx context.Context, do func(*app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	doErr := do(a)
	if closeErr := a.close(ctx); closeErr != nil && doErr == nil {
		doErr = closeErr
	}
	if doErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", doErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
