package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// averageCmd prints a symbol's moving average close price.
type averageCmd struct {
	on     string
	window int
}

func (*averageCmd) Name() string     { return "average" }
func (*averageCmd) Synopsis() string { return "compute a symbol's moving average" }
func (*averageCmd) Usage() string {
	return `sfo average [-on <date>] [-window <n>] <symbol>

  Prints the mean close price over the n most recent trading days ending
  at the given date (default today). Weekends are skipped, not counted.
`
}
func (c *averageCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "end date, in YYYY-MM-DD format (default today)")
	f.IntVar(&c.window, "window", 30, "number of trading days to average over")
}

func (c *averageCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	day, err := parseDay(c.on)
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}

	return run(ctx, func(a *app) error {
		avg, err := a.analysis.MovingAverage(ctx, symbol, day, c.window)
		if err != nil {
			return err
		}
		fmt.Printf("%s %d-day average ending %s: %s\n", symbol, c.window, day, avg.StringFixed(4))
		return nil
	})
}
