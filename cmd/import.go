package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"stockfolio"
)

// importCmd replaces the full state from a JSONL file.
type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace all portfolios from a JSONL file" }
func (*importCmd) Usage() string {
	return `sfo import <file>

  Replaces every portfolio with the transactions in the JSONL file. The
  import replays each transaction through the ledger rules and fails
  without changes when the file is inconsistent.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	return run(ctx, func(a *app) error {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer file.Close()
		st, err := stockfolio.DecodeState(file)
		if err != nil {
			return err
		}
		if err := a.service.ImportState(st); err != nil {
			return err
		}
		fmt.Printf("Imported %d portfolios from %s\n", len(st.Portfolios), path)
		return nil
	})
}
