package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

// overviewCmd holds the flags for the 'overview' subcommand.
type overviewCmd struct {
	raw bool
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "display the trade period and buy/sell totals of an order export" }
func (*overviewCmd) Usage() string {
	return `capgains overview [-raw] <orders.csv>

  Displays the trading period, the number of orders and the quantity, value
  and commission bought and sold in an mBank eMakler order export.
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown instead of rendering it.")
}

func (c *overviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one order export, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	cfg, err := configure()
	if err != nil {
		printError(err)
		return subcommands.ExitUsageError
	}
	orders, err := loadOrders(cfg, f.Arg(0))
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}
	general, err := capgains.NewGeneralReport(orders)
	if err != nil {
		printError(err)
		return subcommands.ExitFailure
	}

	md := renderer.GeneralMarkdown(general)
	if c.raw {
		fmt.Fprint(stdout, md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
