// Package store persists portfolio state and price cache entries in a local
// sqlite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"stockfolio"
	"stockfolio/date"
)

// DB wraps the sqlite handle used for persistence.
type DB struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, logger zerolog.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	d := &DB{db: db, log: logger}
	if err := d.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error { return d.db.Close() }

func (d *DB) migrate(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS portfolios (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE COLLATE NOCASE
);

CREATE TABLE IF NOT EXISTS transactions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  portfolio_id TEXT NOT NULL REFERENCES portfolios(id) ON DELETE CASCADE,
  symbol TEXT NOT NULL,
  kind TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price TEXT NOT NULL,
  day TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_portfolio ON transactions(portfolio_id);
CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);

CREATE TABLE IF NOT EXISTS prices (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  symbol TEXT NOT NULL,
  day TEXT NOT NULL,
  open TEXT NOT NULL,
  close TEXT NOT NULL,
  UNIQUE(symbol, day)
);
CREATE INDEX IF NOT EXISTS idx_prices_symbol ON prices(symbol);
`)
	return err
}

// SaveState replaces the persisted portfolio state with st.
func (d *DB) SaveState(ctx context.Context, st stockfolio.State) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM portfolios`); err != nil {
		return err
	}
	for _, ps := range st.Portfolios {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO portfolios(id, name) VALUES(?, ?)`, ps.ID, ps.Name); err != nil {
			return fmt.Errorf("saving portfolio %q: %w", ps.Name, err)
		}
		for _, rec := range ps.Transactions {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO transactions(portfolio_id, symbol, kind, quantity, unit_price, day)
				VALUES(?, ?, ?, ?, ?, ?)`,
				ps.ID, rec.Symbol, string(rec.Kind), rec.Quantity,
				rec.UnitPrice.String(), rec.Day.String()); err != nil {
				return fmt.Errorf("saving %s transaction of %q: %w", rec.Symbol, ps.Name, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	d.log.Debug().Int("portfolios", len(st.Portfolios)).Msg("state saved")
	return nil
}

// LoadState reads the persisted portfolio state. Transactions come back in
// insertion order, which preserves same-day ordering on replay.
func (d *DB) LoadState(ctx context.Context) (stockfolio.State, error) {
	var st stockfolio.State

	rows, err := d.db.QueryContext(ctx, `SELECT id, name FROM portfolios ORDER BY name`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var ps stockfolio.PortfolioState
		if err := rows.Scan(&ps.ID, &ps.Name); err != nil {
			return stockfolio.State{}, err
		}
		index[ps.ID] = len(st.Portfolios)
		st.Portfolios = append(st.Portfolios, ps)
	}
	if err := rows.Err(); err != nil {
		return stockfolio.State{}, err
	}

	txRows, err := d.db.QueryContext(ctx, `
		SELECT portfolio_id, symbol, kind, quantity, unit_price, day
		FROM transactions ORDER BY id`)
	if err != nil {
		return stockfolio.State{}, err
	}
	defer txRows.Close()

	for txRows.Next() {
		var pid, symbol, kind, priceStr, dayStr string
		var quantity int64
		if err := txRows.Scan(&pid, &symbol, &kind, &quantity, &priceStr, &dayStr); err != nil {
			return stockfolio.State{}, err
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return stockfolio.State{}, fmt.Errorf("stored price %q: %w", priceStr, err)
		}
		day, err := date.Parse(dayStr)
		if err != nil {
			return stockfolio.State{}, fmt.Errorf("stored day %q: %w", dayStr, err)
		}
		i, ok := index[pid]
		if !ok {
			return stockfolio.State{}, fmt.Errorf("transaction references unknown portfolio %q", pid)
		}
		st.Portfolios[i].Transactions = append(st.Portfolios[i].Transactions, stockfolio.LedgerRecord{
			Symbol: symbol,
			Transaction: stockfolio.Transaction{
				Day:       day,
				Kind:      stockfolio.TxKind(kind),
				Quantity:  quantity,
				UnitPrice: price,
			},
		})
	}
	return st, txRows.Err()
}

// SavePrices upserts price cache entries. Existing (symbol, day) rows are
// left untouched: a fetched price never changes.
func (d *DB) SavePrices(ctx context.Context, entries []stockfolio.PriceEntry) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO prices(symbol, day, open, close) VALUES(?, ?, ?, ?)
			ON CONFLICT(symbol, day) DO NOTHING`,
			e.Symbol, e.Day.String(), e.Open.String(), e.Close.String()); err != nil {
			return fmt.Errorf("saving price %s@%s: %w", e.Symbol, e.Day, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	d.log.Debug().Int("entries", len(entries)).Msg("prices saved")
	return nil
}

// LoadPrices reads all persisted price cache entries.
func (d *DB) LoadPrices(ctx context.Context) ([]stockfolio.PriceEntry, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT symbol, day, open, close FROM prices ORDER BY symbol, day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []stockfolio.PriceEntry
	for rows.Next() {
		var symbol, dayStr, openStr, closeStr string
		if err := rows.Scan(&symbol, &dayStr, &openStr, &closeStr); err != nil {
			return nil, err
		}
		day, err := date.Parse(dayStr)
		if err != nil {
			return nil, fmt.Errorf("stored day %q: %w", dayStr, err)
		}
		open, err := decimal.NewFromString(openStr)
		if err != nil {
			return nil, fmt.Errorf("stored open %q: %w", openStr, err)
		}
		close, err := decimal.NewFromString(closeStr)
		if err != nil {
			return nil, fmt.Errorf("stored close %q: %w", closeStr, err)
		}
		entries = append(entries, stockfolio.PriceEntry{Symbol: symbol, Day: day, Open: open, Close: close})
	}
	return entries, rows.Err()
}
