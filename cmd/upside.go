package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/upside"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// upsideCmd holds the flags for the 'upside' subcommand.
type upsideCmd struct {
	investment capgains.Money
	out        string
}

func (*upsideCmd) Name() string     { return "upside" }
func (*upsideCmd) Synopsis() string { return "project the profit of target prices" }
func (*upsideCmd) Usage() string {
	return `capgains upside [-investment <amount>] [-out <file>] <upside.csv> <market.csv>

  Projects, for each target of the upside file, the profit of buying at the
  closing price of the market file and selling at the target price.

  The result is written next to the upside file, in <upside>_report.csv,
  unless -out is set.
`
}

func (c *upsideCmd) SetFlags(f *flag.FlagSet) {
	f.TextVar(&c.investment, "investment", upside.DefaultInvestment, "Amount invested in targets without a max_quantity.")
	f.StringVar(&c.out, "out", "", "Output file.")
}

func (c *upsideCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Error: expected an upside file and a market file, got %d arguments\n", f.NArg())
		return subcommands.ExitUsageError
	}
	targetsFile, marketFile := f.Arg(0), f.Arg(1)

	cfg, err := configure()
	if err != nil {
		printError(err)
		return subcommands.ExitUsageError
	}

	targets, err := readCSV(targetsFile, upside.ReadTargets)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	quotes, err := readCSV(marketFile, upside.ReadQuotes)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}

	projector := upside.NewProjector(c.investment)
	projector.Commission = cfg.Broker.Commission()
	projector.TaxRate = cfg.TaxRate
	projections, err := projector.Project(targets, quotes)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	log.WithFields(log.Fields{"targets": len(targets), "quotes": len(quotes)}).Debug("upside projected")

	var buf bytes.Buffer
	if err := upside.WriteCSV(&buf, projections); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	out := c.out
	if out == "" {
		out = sibling(targetsFile, "_report.csv")
	}
	if err := writeOutput(out, buf.Bytes()); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// readCSV opens 'path' and decodes it with 'read'.
func readCSV[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &capgains.LoadError{Path: path, Err: err}
	}
	defer f.Close()
	return read(f)
}
