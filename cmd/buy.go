package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
)

// buyCmd records a purchase priced at the day's close.
type buyCmd struct {
	on string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a stock purchase" }
func (*buyCmd) Usage() string {
	return `sfo buy [-on <date>] <portfolio> <symbol> <quantity>

  Records a purchase priced at the symbol's close on the given weekday
  (default today). A symbol can be bought at most once per date.
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "purchase date, in YYYY-MM-DD format (default today)")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		if err := a.service.BuyStock(ctx, portfolio, symbol, quantity, day); err != nil {
			return err
		}
		fmt.Printf("Bought %d %s on %s in %q\n", quantity, symbol, day, portfolio)
		return nil
	})
}
