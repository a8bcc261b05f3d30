package renderer

import (
	"io"

	"github.com/etnz/capgains"
	"github.com/olekukonko/tablewriter"
)

// WriteTable writes the report instruments as a plain text table, with the
// summary totals as footer.
func WriteTable(w io.Writer, r *capgains.Report) error {
	return ConditionalBlock(w, func(w io.Writer) error {
		header, rows := r.Table()

		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader(header)
		alignments := make([]int, 0, len(capgains.Columns))
		for _, c := range capgains.Columns {
			if c.Numeric {
				alignments = append(alignments, tablewriter.ALIGN_RIGHT)
			} else {
				alignments = append(alignments, tablewriter.ALIGN_LEFT)
			}
		}
		table.SetColumnAlignment(alignments)
		table.AppendBulk(rows)
		table.SetFooter(footer(header, r.Summary))
		table.Render()
		return nil
	})
}

// footer places the summary totals under their columns.
func footer(header []string, s capgains.Summary) []string {
	totals := map[string]string{
		"Instrument":       "Total",
		"Trade Start":      day(s.TradePeriod.Start),
		"Trade End":        day(s.TradePeriod.End),
		"Total Commission": s.CommissionTotal.String(),
		"Tax":              s.TaxAmountTotal.String(),
		"Net Profit":       s.NetProfitTotal.String(),
	}
	f := make([]string, len(header))
	for i, h := range header {
		f[i] = totals[h]
	}
	return f
}
