package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capgains"
	md "github.com/nao1215/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportMarkdown renders a profit report: a summary and one line per instrument.
func ReportMarkdown(r *capgains.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	s := r.Summary
	doc.H1("Capital Gains Report")
	doc.BulletList(
		fmt.Sprintf("Trade period: %s to %s", day(s.TradePeriod.Start), day(s.TradePeriod.End)),
		fmt.Sprintf("Instruments: %d", len(r.Instruments)),
		fmt.Sprintf("Commission: %s", s.CommissionTotal.Format(s.Currency)),
		fmt.Sprintf("Tax: %s", s.TaxAmountTotal.Format(s.Currency)),
		fmt.Sprintf("Net profit: %s", md.Bold(s.NetProfitTotal.Format(s.Currency))),
	)

	doc.H2("Instruments")
	header, rows := r.Table()
	table := md.TableSet{Header: header, Rows: rows}
	for _, c := range capgains.Columns {
		table.Alignment = append(table.Alignment, alignment(c))
	}
	doc.Table(table)

	return doc.String()
}

// GeneralMarkdown renders the overview of an order export.
func GeneralMarkdown(g *capgains.GeneralReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	p := message.NewPrinter(language.English)

	doc.H1("Trading Overview")
	doc.BulletList(
		fmt.Sprintf("Trade period: %s to %s (%d days)", day(g.TradePeriod.Start), day(g.TradePeriod.End), g.TradePeriod.Days()),
		p.Sprintf("Orders: %d, %d executed", g.Orders, g.Buy.Orders+g.Sell.Orders),
		p.Sprintf("Instruments: %d", g.Instruments),
	)

	side := func(name string, s capgains.SideSummary) []string {
		return []string{name, p.Sprintf("%d", s.Orders), p.Sprintf("%d", s.Quantity), s.Value.String(), s.Commission.String()}
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Side", "Orders", "Quantity", "Value", "Commission"},
		Rows: [][]string{
			side("Buy", g.Buy),
			side("Sell", g.Sell),
		},
	})
	return doc.String()
}

func alignment(c capgains.Column) md.TableAlignment {
	if c.Numeric {
		return md.AlignRight
	}
	return md.AlignLeft
}
