package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
)

// sellCmd records a sale priced at the day's close.
type sellCmd struct {
	on string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a stock sale" }
func (*sellCmd) Usage() string {
	return `sfo sell [-on <date>] <portfolio> <symbol> <quantity>

  Records a sale priced at the symbol's close on the given date (default
  today). The sale must not exceed the position held on that date.
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "sale date, in YYYY-MM-DD format (default today)")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	portfolio, symbol := f.Arg(0), f.Arg(1)
	quantity, err := strconv.ParseInt(f.Arg(2), 10, 64)
	if err != nil {
		fmt.Printf("invalid quantity %q\n", f.Arg(2))
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.on)
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}

	return run(ctx, func(a *app) error {
		if err := a.service.SellStock(ctx, portfolio, symbol, quantity, day); err != nil {
			return err
		}
		fmt.Printf("Sold %d %s on %s from %q\n", quantity, symbol, day, portfolio)
		return nil
	})
}
