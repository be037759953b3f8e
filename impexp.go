package stockfolio

import (
	"fmt"

	"github.com/google/uuid"
)

// LedgerRecord is one plain exported transaction row of a portfolio.
type LedgerRecord struct {
	Symbol string `json:"symbol"`
	Transaction
}

// PortfolioState is the plain exported form of one portfolio.
type PortfolioState struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Transactions []LedgerRecord `json:"transactions"`
}

// State is the plain exported form of everything the service owns. The
// exact on-disk encoding is the persistence collaborator's responsibility.
type State struct {
	Portfolios []PortfolioState `json:"portfolios"`
}

// ExportState returns a deep snapshot of all portfolios as plain records,
// sorted by portfolio name, then symbol, then date.
func (s *Service) ExportState() State {
	var st State
	for _, p := range s.portfoliosSorted() {
		ps := PortfolioState{ID: p.ID().String(), Name: p.Name()}
		for _, symbol := range p.Symbols() {
			history, _ := p.History(symbol)
			for _, tx := range history {
				ps.Transactions = append(ps.Transactions, LedgerRecord{Symbol: symbol, Transaction: tx})
			}
		}
		st.Portfolios = append(st.Portfolios, ps)
	}
	return st
}

// ImportState replaces the service's portfolios with the given state,
// replaying every transaction through the ledger invariants. It fails
// without touching the service when the state is inconsistent.
func (s *Service) ImportState(st State) error {
	restored := make(map[string]*Portfolio, len(st.Portfolios))
	for _, ps := range st.Portfolios {
		name := ps.Name
		if foldName(name) == "" {
			return fmt.Errorf("import: %w", ErrInvalidName)
		}
		if _, ok := restored[foldName(name)]; ok {
			return fmt.Errorf("import %q: %w", name, ErrPortfolioExists)
		}
		p := NewPortfolio(name)
		if id, err := uuid.Parse(ps.ID); err == nil {
			p.id = id
		}
		for _, rec := range ps.Transactions {
			symbol := foldSymbol(rec.Symbol)
			sec, ok := p.securities[symbol]
			if !ok {
				sec = newSecurity(symbol)
				p.securities[symbol] = sec
			}
			if err := sec.restore(rec.Transaction); err != nil {
				return fmt.Errorf("import %q: %w", name, err)
			}
		}
		restored[foldName(name)] = p
	}

	s.mu.Lock()
	s.portfolios = restored
	s.mu.Unlock()
	s.log.Info().Int("portfolios", len(restored)).Msg("state imported")
	return nil
}
