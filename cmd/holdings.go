package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"stockfolio"
	"stockfolio/date"
)

// holdingsCmd prints the positions of one portfolio on a date.
type holdingsCmd struct {
	on string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show a portfolio's positions" }
func (*holdingsCmd) Usage() string {
	return `sfo holdings [-on <date>] <portfolio>

  Prints the shares held per symbol on the given date (default today).
`
}
func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "date to report, in YYYY-MM-DD format (default today)")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	day, err := parseDay(c.on)
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}

	return run(ctx, func(a *app) error {
		p, ok := a.service.Get(name)
		if !ok {
			return fmt.Errorf("%q: %w", name, stockfolio.ErrPortfolioNotFound)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "# %s on %s\n\n", p.Name(), day)
		fmt.Fprintf(&b, "| Symbol | Quantity |\n|---|---:|\n")
		held := 0
		for _, symbol := range p.Symbols() {
			q := p.Quantity(symbol, day)
			if q == 0 {
				continue
			}
			held++
			fmt.Fprintf(&b, "| %s | %d |\n", symbol, q)
		}
		if held == 0 {
			fmt.Printf("Portfolio %q holds nothing on %s.\n", p.Name(), day)
			return nil
		}
		printMarkdown(b.String())
		return nil
	})
}

// parseDay parses an optional date flag, defaulting to today.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}
