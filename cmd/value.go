package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stockfolio"
)

// valueCmd prints a portfolio's market value on a date.
type valueCmd struct {
	on string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "compute a portfolio's market value" }
func (*valueCmd) Usage() string {
	return `sfo value [-on <date>] <portfolio>

  Prints the portfolio's market value on the given date (default today).
  Weekend dates are valued at the prior Friday's closes.
`
}
func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "valuation date, in YYYY-MM-DD format (default today)")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		value, err := a.service.ValueOn(ctx, name, day)
		if err != nil {
			return err
		}
		fmt.Printf("%s is worth %s on %s\n", name, stockfolio.M(value, a.cfg.Currency), day)
		return nil
	})
}
