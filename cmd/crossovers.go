package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"stockfolio/date"
)

// crossoversCmd lists the trading days whose close exceeds the open.
type crossoversCmd struct {
	from string
	to   string
}

func (*crossoversCmd) Name() string     { return "crossovers" }
func (*crossoversCmd) Synopsis() string { return "list days closing above their open" }
func (*crossoversCmd) Usage() string {
	return `sfo crossovers -from <date> -to <date> <symbol>

  Lists the trading days in the inclusive range whose close price is
  strictly above the open price.
`
}
func (c *crossoversCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "range start, in YYYY-MM-DD format")
	f.StringVar(&c.to, "to", "", "range end, in YYYY-MM-DD format")
}

func (c *crossoversCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.from == "" || c.to == "" {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	r, err := parseRange(c.from, c.to)
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}

	return run(ctx, func(a *app) error {
		var b strings.Builder
		fmt.Fprintf(&b, "# %s crossovers %s to %s\n\n", symbol, r.From, r.To)
		count := 0
		for day, err := range a.analysis.Crossovers(ctx, symbol, r) {
			if err != nil {
				return err
			}
			count++
			fmt.Fprintf(&b, "- %s\n", day)
		}
		if count == 0 {
			fmt.Printf("No crossovers for %s between %s and %s.\n", symbol, r.From, r.To)
			return nil
		}
		printMarkdown(b.String())
		return nil
	})
}

// parseRange parses the -from/-to pair into an inclusive range.
func parseRange(from, to string) (date.Range, error) {
	f, err := date.Parse(from)
	if err != nil {
		return date.Range{}, err
	}
	t, err := date.Parse(to)
	if err != nil {
		return date.Range{}, err
	}
	r := date.NewRange(f, t)
	if !r.IsValid() {
		return date.Range{}, fmt.Errorf("range %s to %s: start is after end", f, t)
	}
	return r, nil
}
