package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
	"github.com/gocarina/gocsv"
)

// csvRow is an instrument line of the CSV report.
type csvRow struct {
	Instrument       string         `csv:"instrument"`
	TradeStart       string         `csv:"trade_start"`
	TradeEnd         string         `csv:"trade_end"`
	BuyQuantity      int64          `csv:"buy_quantity"`
	SellQuantity     int64          `csv:"sell_quantity"`
	BuyCommission    capgains.Money `csv:"buy_commission"`
	SellCommission   capgains.Money `csv:"sell_commission"`
	TotalCommission  capgains.Money `csv:"total_commission"`
	PurchaseValue    capgains.Money `csv:"purchase_value"`
	SaleValue        capgains.Money `csv:"sale_value"`
	CostBasis        capgains.Money `csv:"cost_basis"`
	NetProceeds      capgains.Money `csv:"net_proceeds"`
	AverageCostBasis capgains.Money `csv:"average_cost_basis"`
	TaxBase          capgains.Money `csv:"tax_base"`
	TaxAmount        capgains.Money `csv:"tax_amount"`
	NetProfit        capgains.Money `csv:"net_profit"`
	PctChange        string         `csv:"pct_change"`
	DaysToSettle     int            `csv:"days_to_settle"`
}

func newCSVRow(r capgains.InstrumentResult) csvRow {
	row := csvRow{
		Instrument:       r.Instrument,
		TradeStart:       day(r.TradePeriod.Start),
		TradeEnd:         day(r.TradePeriod.End),
		BuyQuantity:      r.BuyQuantity,
		SellQuantity:     r.SellQuantity,
		BuyCommission:    r.BuyCommission,
		SellCommission:   r.SellCommission,
		TotalCommission:  r.TotalCommission(),
		PurchaseValue:    r.PurchaseValue,
		SaleValue:        r.SaleValue,
		CostBasis:        r.CostBasis,
		NetProceeds:      r.NetProceeds,
		AverageCostBasis: r.AverageCostBasis,
		TaxBase:          r.TaxBase,
		TaxAmount:        r.TaxAmount,
		NetProfit:        r.NetProfit,
		DaysToSettle:     r.DaysToSettle,
	}
	if r.Settled() {
		row.PctChange = r.PctChange.Percent()
	}
	return row
}

// WriteCSV writes the report as comma separated values: the summary as '#'
// comment lines, then a header and one line per instrument.
//
// Nothing is written to w if the report cannot be encoded.
func WriteCSV(w io.Writer, r *capgains.Report) error {
	return ConditionalBlock(w, func(w io.Writer) error {
		s := r.Summary
		fmt.Fprintf(w, "# Trade start: %s\n", day(s.TradePeriod.Start))
		fmt.Fprintf(w, "# Trade end: %s\n", day(s.TradePeriod.End))
		fmt.Fprintf(w, "# Commission total: %s\n", s.CommissionTotal)
		fmt.Fprintf(w, "# Tax total: %s\n", s.TaxAmountTotal)
		fmt.Fprintf(w, "# Net profit total: %s\n", s.NetProfitTotal)

		rows := make([]csvRow, 0, len(r.Instruments))
		for _, instrument := range r.Instruments {
			rows = append(rows, newCSVRow(instrument))
		}
		if err := gocsv.Marshal(&rows, w); err != nil {
			return fmt.Errorf("cannot encode report: %w", err)
		}
		return nil
	})
}

// day formats t as a day, day first, empty for the zero time.
func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return date.Of(t).Local()
}
