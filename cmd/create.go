package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// createCmd creates a new named portfolio.
type createCmd struct{}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new portfolio" }
func (*createCmd) Usage() string {
	return `sfo create <name>

  Creates an empty portfolio. Names are unique, ignoring case.
`
}
func (*createCmd) SetFlags(*flag.FlagSet) {}

func (c *createCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	return run(ctx, func(a *app) error {
		p, err := a.service.Create(name)
		if err != nil {
			return err
		}
		fmt.Printf("Created portfolio %q (%s)\n", p.Name(), p.ID())
		return nil
	})
}
