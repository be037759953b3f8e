package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

// listCmd lists all portfolios.
type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list portfolios" }
func (*listCmd) Usage() string {
	return `sfo list

  Lists all portfolio names.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		names := a.service.Names()
		if len(names) == 0 {
			fmt.Println("No portfolios.")
			return nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "# Portfolios (%d)\n\n", len(names))
		for _, name := range names {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		printMarkdown(b.String())
		return nil
	})
}
