package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// Report formats.
const (
	formatCSV      = "csv"
	formatPretty   = "pretty"
	formatTable    = "table"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

var formats = []string{formatCSV, formatPretty, formatTable, formatJSON, formatMarkdown}

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	format string
	out    string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compute the capital gains report of an order export" }
func (*reportCmd) Usage() string {
	return `capgains report [-o <format>] [-out <file>] <orders.csv>

  Computes the average cost basis, tax and net profit of every instrument
  traded in an mBank eMakler order export.

  The csv format is written next to the export, in <orders>_profit_report.csv,
  other formats are printed unless -out is set.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "o", "", "Output format: csv, pretty, table, json or markdown. Defaults to $"+EnvFormat+", the configured format, or csv.")
	f.StringVar(&c.out, "out", "", "Output file.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one order export, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	input := f.Arg(0)

	cfg, err := configure()
	if err != nil {
		printError(err)
		return subcommands.ExitUsageError
	}
	format := c.format
	if format == "" {
		format = cfg.Format
	}
	if !validFormat(format) {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, want one of %v\n", format, formats)
		return subcommands.ExitUsageError
	}

	orders, err := loadOrders(cfg, input)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	report, err := capgains.NewAggregator(cfg.TaxRate).Aggregate(orders)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	log.WithFields(log.Fields{"instruments": len(report.Instruments), "format": format}).Debug("report computed")

	if format == formatPretty && c.out == "" {
		printMarkdown(renderer.ReportMarkdown(report))
		return subcommands.ExitSuccess
	}

	content, err := render(report, format)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	out := c.out
	if out == "" && format == formatCSV {
		out = sibling(input, "_profit_report.csv")
	}
	if err := writeOutput(out, content); err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func validFormat(format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// render encodes the whole report in memory, nothing is written on failure.
func render(report *capgains.Report, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case formatCSV:
		if err := renderer.WriteCSV(&buf, report); err != nil {
			return nil, err
		}
	case formatTable:
		if err := renderer.WriteTable(&buf, report); err != nil {
			return nil, err
		}
	case formatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, err
		}
		buf.Write(data)
		buf.WriteString("\n")
	case formatMarkdown, formatPretty:
		buf.WriteString(renderer.ReportMarkdown(report))
	}
	return buf.Bytes(), nil
}
