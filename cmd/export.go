package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"stockfolio"
)

// exportCmd writes the full state as JSONL.
type exportCmd struct {
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export all portfolios as JSONL" }
func (*exportCmd) Usage() string {
	return `sfo export [-o <file>]

  Writes every portfolio's transactions as JSONL, one transaction per
  line, to the file or to stdout.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "destination file (default stdout)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *app) error {
		w := os.Stdout
		if c.out != "" {
			file, err := os.Create(c.out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", c.out, err)
			}
			defer file.Close()
			w = file
		}
		return stockfolio.EncodeState(w, a.service.ExportState())
	})
}
