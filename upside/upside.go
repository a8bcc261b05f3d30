// Package upside projects the profit of target prices, before trading.
//
// A target says "this instrument could be sold at this price". Joined with
// the latest market quotes, each target becomes a projection of the cost of
// buying at today's price and the profit left after commissions and tax when
// selling at the target.
package upside

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/etnz/capgains"
	"github.com/gocarina/gocsv"
)

// Target is one line of an upside file.
type Target struct {
	Instrument  string         `csv:"instrument"`
	Upside      capgains.Money `csv:"upside"` // target sell price
	CreatedBy   string         `csv:"created_by"`
	CreatedAt   string         `csv:"created_at"`
	MaxQuantity int64          `csv:"max_quantity"` // 0 to derive it from the investment
}

// Quote is one line of a market data file. Other columns are ignored.
type Quote struct {
	Instrument   string         `csv:"instrument"`
	ClosingPrice capgains.Money `csv:"closing_price"`
}

// Projection is the outcome of buying at the closing price and selling at the target.
type Projection struct {
	Instrument     string         `csv:"instrument"`
	Upside         capgains.Money `csv:"upside"`
	CreatedBy      string         `csv:"created_by"`
	CreatedAt      string         `csv:"created_at"`
	MaxQuantity    int64          `csv:"max_quantity"`
	ClosingPrice   capgains.Money `csv:"closing_price"`
	Quantity       int64          `csv:"quantity"`
	BuyCommission  capgains.Money `csv:"buy_commission"`
	SellCommission capgains.Money `csv:"sell_commission"`
	CostBasis      capgains.Money `csv:"cost_basis"`
	NetProceeds    capgains.Money `csv:"net_proceeds"`
	TaxBase        capgains.Money `csv:"tax_base"`
	TaxAmount      capgains.Money `csv:"tax_amount"`
	NetProfit      capgains.Money `csv:"net_profit"`
}

// DefaultInvestment is the amount invested in targets without a maximum quantity.
var DefaultInvestment = capgains.M("1000.00")

// Projector computes projections. Its zero value is not usable, see NewProjector.
type Projector struct {
	Investment capgains.Money
	Commission capgains.CommissionPolicy
	TaxRate    capgains.Rate
}

// NewProjector returns a projector with the mBank commission and the default tax rate.
func NewProjector(investment capgains.Money) *Projector {
	return &Projector{Investment: investment, Commission: capgains.MBankCommission, TaxRate: capgains.DefaultTaxRate}
}

// Project computes one projection per target, sorted by instrument, author
// and creation time.
func (p *Projector) Project(targets []Target, quotes []Quote) ([]Projection, error) {
	prices := make(map[string]capgains.Money, len(quotes))
	for _, q := range quotes {
		prices[q.Instrument] = q.ClosingPrice
	}

	projections := make([]Projection, 0, len(targets))
	for _, t := range targets {
		price, ok := prices[t.Instrument]
		if !ok {
			return nil, &capgains.CalcError{Instrument: t.Instrument, Err: fmt.Errorf("no market quote: %w", capgains.ErrMissingData)}
		}
		proj, err := p.project(t, price)
		if err != nil {
			return nil, &capgains.CalcError{Instrument: t.Instrument, Err: err}
		}
		projections = append(projections, proj)
	}

	slices.SortStableFunc(projections, func(a, b Projection) int {
		return cmp.Or(
			cmp.Compare(a.Instrument, b.Instrument),
			cmp.Compare(a.CreatedBy, b.CreatedBy),
			cmp.Compare(a.CreatedAt, b.CreatedAt),
		)
	})
	return projections, nil
}

func (p *Projector) project(t Target, price capgains.Money) (Projection, error) {
	if !price.IsPositive() {
		return Projection{}, fmt.Errorf("closing price %s: %w", price, capgains.ErrMissingData)
	}
	quantity := t.MaxQuantity
	if quantity == 0 {
		// whole units the investment buys.
		q, _ := p.Investment.Decimal().QuoRem(price.Decimal(), 0)
		quantity = q.IntPart()
	}

	r := Projection{
		Instrument:   t.Instrument,
		Upside:       t.Upside,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		MaxQuantity:  t.MaxQuantity,
		ClosingPrice: price,
		Quantity:     quantity,
	}
	purchase := price.Times(quantity)
	sale := t.Upside.Times(quantity)
	r.BuyCommission = p.Commission.Charge(purchase)
	r.SellCommission = p.Commission.Charge(sale)
	r.CostBasis = purchase.Add(r.BuyCommission)
	r.NetProceeds = sale.Sub(r.SellCommission)
	r.TaxBase = r.NetProceeds.Sub(r.CostBasis)
	r.TaxAmount = r.TaxBase.Scale(p.TaxRate)
	r.NetProfit = r.TaxBase.Sub(r.TaxAmount)
	return r, nil
}

// ReadTargets reads an upside file.
func ReadTargets(r io.Reader) ([]Target, error) {
	var targets []Target
	if err := unmarshal(r, &targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// ReadQuotes reads a market data file.
func ReadQuotes(r io.Reader) ([]Quote, error) {
	var quotes []Quote
	if err := unmarshal(r, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func unmarshal(r io.Reader, out any) error {
	err := gocsv.Unmarshal(r, out)
	if err == nil {
		return nil
	}
	var cerr *csv.ParseError
	if !errors.As(err, &cerr) {
		return &capgains.ParseError{Err: err}
	}
	var perr *capgains.ParseError
	if errors.As(cerr.Err, &perr) {
		perr.Line = cerr.Line
		return perr
	}
	return &capgains.ParseError{Line: cerr.Line, Err: cerr.Err}
}

// WriteCSV writes projections as a comma separated file with a header line.
func WriteCSV(w io.Writer, projections []Projection) error {
	return gocsv.Marshal(&projections, w)
}
