package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stockfolio"
)

// investmentCmd prints the net cash committed to a portfolio.
type investmentCmd struct {
	on string
}

func (*investmentCmd) Name() string     { return "investment" }
func (*investmentCmd) Synopsis() string { return "compute a portfolio's net invested cash" }
func (*investmentCmd) Usage() string {
	return `sfo investment [-on <date>] <portfolio>

  Prints the net cash committed up to the given date: purchases minus
  sale proceeds. Can be negative once sales exceed purchases.
`
}
func (c *investmentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "cut-off date, in YYYY-MM-DD format (default today)")
}

func (c *investmentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		invested, err := a.service.InvestmentOn(name, day)
		if err != nil {
			return err
		}
		fmt.Printf("%s has %s invested up to %s\n", name, stockfolio.M(invested, a.cfg.Currency), day)
		return nil
	})
}
