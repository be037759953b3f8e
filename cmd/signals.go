package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

// signalsCmd classifies dual-moving-average crossovers in a range.
type signalsCmd struct {
	from  string
	to    string
	short int
	long  int
}

func (*signalsCmd) Name() string     { return "signals" }
func (*signalsCmd) Synopsis() string { return "classify dual moving-average crossovers" }
func (*signalsCmd) Usage() string {
	return `sfo signals -from <date> -to <date> [-short <n>] [-long <n>] <symbol>

  Prints a BUY signal on each trading day the short moving average moves
  above the long one, and a SELL signal on the opposite cross. Days
  without a change print nothing.
`
}
func (c *signalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "range start, in YYYY-MM-DD format")
	f.StringVar(&c.to, "to", "", "range end, in YYYY-MM-DD format")
	f.IntVar(&c.short, "short", 30, "short moving-average period, in trading days")
	f.IntVar(&c.long, "long", 100, "long moving-average period, in trading days")
}

func (c *signalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		signals, err := a.analysis.MovingCrossovers(ctx, symbol, r, c.short, c.long)
		if err != nil {
			return err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "# %s %d/%d signals %s to %s\n\n", symbol, c.short, c.long, r.From, r.To)
		count := 0
		for sig, err := range signals {
			if err != nil {
				return err
			}
			count++
			fmt.Fprintf(&b, "- %s **%s**\n", sig.Day, sig.Action)
		}
		if count == 0 {
			fmt.Printf("No signals for %s between %s and %s.\n", symbol, r.From, r.To)
			return nil
		}
		printMarkdown(b.String())
		return nil
	})
}
