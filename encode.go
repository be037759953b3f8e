package stockfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// stateLine is one JSONL line of the portfolio state file: a transaction row
// tagged with the portfolio it belongs to.
type stateLine struct {
	Portfolio   string `json:"portfolio"`
	PortfolioID string `json:"portfolioId,omitempty"`
	LedgerRecord
}

// EncodeState writes the exported state to w in JSONL format, one
// transaction per line, in canonical order. Portfolios without transactions
// are written as a single line with no symbol.
func EncodeState(w io.Writer, st State) error {
	enc := json.NewEncoder(w)
	for _, ps := range st.Portfolios {
		if len(ps.Transactions) == 0 {
			if err := enc.Encode(stateLine{Portfolio: ps.Name, PortfolioID: ps.ID}); err != nil {
				return fmt.Errorf("encoding portfolio %q: %w", ps.Name, err)
			}
			continue
		}
		for _, rec := range ps.Transactions {
			if err := enc.Encode(stateLine{Portfolio: ps.Name, PortfolioID: ps.ID, LedgerRecord: rec}); err != nil {
				return fmt.Errorf("encoding portfolio %q: %w", ps.Name, err)
			}
		}
	}
	return nil
}

// DecodeState reads a JSONL state stream produced by EncodeState. Lines keep
// their file order, which preserves same-day insertion order on replay.
func DecodeState(r io.Reader) (State, error) {
	var st State
	index := make(map[string]int)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var line stateLine
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return State{}, fmt.Errorf("decoding state line %q: %w", string(lineBytes), err)
		}
		i, ok := index[line.Portfolio]
		if !ok {
			i = len(st.Portfolios)
			index[line.Portfolio] = i
			st.Portfolios = append(st.Portfolios, PortfolioState{ID: line.PortfolioID, Name: line.Portfolio})
		}
		if line.Symbol != "" {
			st.Portfolios[i].Transactions = append(st.Portfolios[i].Transactions, line.LedgerRecord)
		}
	}
	if err := scanner.Err(); err != nil {
		return State{}, fmt.Errorf("reading state: %w", err)
	}
	return st, nil
}

// EncodePrices writes price cache entries to w in JSONL format.
func EncodePrices(w io.Writer, entries []PriceEntry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encoding price %s@%s: %w", e.Symbol, e.Day, err)
		}
	}
	return nil
}

// DecodePrices reads a JSONL price stream produced by EncodePrices.
func DecodePrices(r io.Reader) ([]PriceEntry, error) {
	var entries []PriceEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var e PriceEntry
		if err := json.Unmarshal(lineBytes, &e); err != nil {
			return nil, fmt.Errorf("decoding price line %q: %w", string(lineBytes), err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading prices: %w", err)
	}
	return entries, nil
}
