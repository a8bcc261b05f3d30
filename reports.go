package capgains

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/capgains/date"
)

// Instrument returns the result of instrument 'symbol', if any.
func (r *Report) Instrument(symbol string) (InstrumentResult, bool) {
	i, ok := slices.BinarySearchFunc(r.Instruments, symbol, func(x InstrumentResult, s string) int {
		return strings.Compare(x.Instrument, s)
	})
	if !ok {
		return InstrumentResult{}, false
	}
	return r.Instruments[i], true
}

// Column is one field of an instrument result, as shown in tabular reports.
type Column struct {
	Name    string
	Numeric bool // right aligned
	Value   func(InstrumentResult) string
}

// Columns are the instrument fields in report order.
var Columns = []Column{
	{"Instrument", false, func(r InstrumentResult) string { return r.Instrument }},
	{"Trade Start", false, func(r InstrumentResult) string { return localDay(r.TradePeriod.Start) }},
	{"Trade End", false, func(r InstrumentResult) string { return localDay(r.TradePeriod.End) }},
	{"Buy Quantity", true, func(r InstrumentResult) string { return strconv.FormatInt(r.BuyQuantity, 10) }},
	{"Sell Quantity", true, func(r InstrumentResult) string { return strconv.FormatInt(r.SellQuantity, 10) }},
	{"Buy Commission", true, func(r InstrumentResult) string { return r.BuyCommission.String() }},
	{"Sell Commission", true, func(r InstrumentResult) string { return r.SellCommission.String() }},
	{"Total Commission", true, func(r InstrumentResult) string { return r.TotalCommission().String() }},
	{"Purchase Value", true, func(r InstrumentResult) string { return r.PurchaseValue.String() }},
	{"Sale Value", true, func(r InstrumentResult) string { return r.SaleValue.String() }},
	{"Cost Basis", true, func(r InstrumentResult) string { return r.CostBasis.String() }},
	{"Net Proceeds", true, func(r InstrumentResult) string { return r.NetProceeds.String() }},
	{"Average Cost Basis", true, func(r InstrumentResult) string { return r.AverageCostBasis.String() }},
	{"Tax Base", true, func(r InstrumentResult) string { return r.TaxBase.String() }},
	{"Tax", true, func(r InstrumentResult) string { return r.TaxAmount.String() }},
	{"Net Profit", true, func(r InstrumentResult) string { return r.NetProfit.String() }},
	{"Change", true, pctChange},
	{"Days", true, func(r InstrumentResult) string { return strconv.Itoa(r.DaysToSettle) }},
}

// Table transposes the instrument results into a header and one row of
// display values per instrument, selecting 'columns' (all of them if none).
func (r *Report) Table(columns ...string) (header []string, rows [][]string) {
	cols := Columns
	if len(columns) > 0 {
		cols = cols[:0:0]
		for _, name := range columns {
			if i := slices.IndexFunc(Columns, func(c Column) bool { return c.Name == name }); i >= 0 {
				cols = append(cols, Columns[i])
			}
		}
	}
	for _, c := range cols {
		header = append(header, c.Name)
	}
	for _, instrument := range r.Instruments {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.Value(instrument)
		}
		rows = append(rows, row)
	}
	return header, rows
}

// pctChange is empty for instruments with nothing sold yet.
func pctChange(r InstrumentResult) string {
	if !r.Settled() {
		return ""
	}
	return r.PctChange.Percent()
}

// localDay formats the day of 't' day first, empty for the zero time.
func localDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return date.Of(t).Local()
}

// JSON encoding keeps the field order of the reports.

func (p TradePeriod) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Time("start", p.Start)
	w.Time("end", p.End)
	if !p.IsZero() {
		w.Day("firstDay", date.Of(p.Start))
		w.Day("lastDay", date.Of(p.End))
	}
	return w.MarshalJSON()
}

func (r InstrumentResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.String("instrument", r.Instrument)
	w.OptionalString("currency", r.Currency)
	w.Append("tradePeriod", r.TradePeriod)
	w.Int("buyQuantity", r.BuyQuantity)
	w.Int("sellQuantity", r.SellQuantity)
	w.Money("buyCommission", r.BuyCommission)
	w.Money("sellCommission", r.SellCommission)
	w.Money("totalCommission", r.TotalCommission())
	w.Money("purchaseValue", r.PurchaseValue)
	w.Money("saleValue", r.SaleValue)
	w.Money("costBasis", r.CostBasis)
	w.Money("netProceeds", r.NetProceeds)
	w.Money("averageCostBasis", r.AverageCostBasis)
	w.Money("taxBase", r.TaxBase)
	w.Money("taxAmount", r.TaxAmount)
	w.Money("netProfit", r.NetProfit)
	if r.Settled() {
		w.Rate("pctChange", r.PctChange)
	}
	w.Int("daysToSettle", int64(r.DaysToSettle))
	return w.MarshalJSON()
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tradePeriod", s.TradePeriod)
	w.OptionalString("currency", s.Currency)
	w.Money("commissionTotal", s.CommissionTotal)
	w.Money("taxAmountTotal", s.TaxAmountTotal)
	w.Money("netProfitTotal", s.NetProfitTotal)
	return w.MarshalJSON()
}

// MarshalJSON flattens the summary next to the instrument list.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Embed(r.Summary)
	w.Append("instruments", r.Instruments)
	return w.MarshalJSON()
}
