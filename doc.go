// Package stockfolio provides the core types and operations for tracking
// stock portfolios and valuing them at arbitrary historical dates.
//
// The core functionalities include:
//   - Ledger Management: Recording buys and sells per security in an
//     append-only, chronologically sorted transaction record, and
//     reconstructing the position and net invested cash at any past date.
//   - Price Caching: Lazily memoizing daily quotes per (symbol, date),
//     falling back from weekends and unquoted weekdays to the most recent
//     prior close, with at most one source fetch per key even under
//     concurrent access.
//   - Market Analysis: Moving averages over trading days, daily
//     close-over-open crossovers, and dual moving-average BUY/SELL signals.
//   - Data Persistence: Plain state snapshots for the sqlite store and a
//     JSONL import/export format for moving portfolios between machines.
//
// This package serves as the foundational logic for the `sfo` command-line
// tool; all I/O collaborators (price source, store, terminal rendering) are
// constructed by the shell and passed in explicitly.
package stockfolio
