package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// deleteCmd removes a portfolio and all its transactions.
type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a portfolio" }
func (*deleteCmd) Usage() string {
	return `sfo delete <name>

  Deletes the portfolio and its whole transaction history.
`
}
func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	return run(ctx, func(a *app) error {
		if err := a.service.Delete(name); err != nil {
			return err
		}
		fmt.Printf("Deleted portfolio %q\n", name)
		return nil
	})
}
