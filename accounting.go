package capgains

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultTaxRate is the flat capital gains tax rate.
var DefaultTaxRate = R("19%")

// Aggregator computes average cost basis profit reports.
//
// It holds no state between runs: aggregating the same orders twice yields
// the same report.
type Aggregator struct {
	TaxRate Rate
}

// NewAggregator creates an aggregator applying 'taxRate' on gains.
func NewAggregator(taxRate Rate) *Aggregator { return &Aggregator{TaxRate: taxRate} }

// Aggregate computes the profit report of 'orders' with the default tax rate.
func Aggregate(orders []TradeOrder) (*Report, error) {
	return NewAggregator(DefaultTaxRate).Aggregate(orders)
}

// Aggregate groups executed orders by instrument and computes each instrument
// accounting and the portfolio summary.
//
// Orders that were not executed are ignored. Instruments are sorted by symbol.
func (a *Aggregator) Aggregate(orders []TradeOrder) (*Report, error) {
	positions := make(map[string]*position)
	for _, o := range orders {
		if !o.Eligible() {
			continue
		}
		p, ok := positions[o.Instrument]
		if !ok {
			p = &position{instrument: o.Instrument, currency: o.Currency}
			positions[o.Instrument] = p
		}
		if err := p.add(o); err != nil {
			return nil, err
		}
	}
	if len(positions) == 0 {
		return nil, &CalcError{Err: fmt.Errorf("no executed orders: %w", ErrMissingData)}
	}

	report := &Report{Instruments: make([]InstrumentResult, 0, len(positions))}
	for _, symbol := range slices.Sorted(maps.Keys(positions)) {
		r, err := a.settle(positions[symbol])
		if err != nil {
			return nil, err
		}
		report.Instruments = append(report.Instruments, r)
	}
	report.Summary = summarize(report.Instruments)
	return report, nil
}

// position accumulates the executed orders of one instrument.
type position struct {
	instrument string
	currency   string
	period     TradePeriod

	buyQuantity    int64
	sellQuantity   int64
	buyCommission  Money
	sellCommission Money
	buyGross       Money
	sellGross      Money
}

func (p *position) add(o TradeOrder) error {
	value, ok := o.Value()
	if !ok {
		return &CalcError{Instrument: p.instrument, Err: fmt.Errorf("order at %s has no price: %w", o.SubmissionTime, ErrMissingData)}
	}
	if o.Currency != p.currency {
		p.currency = ""
	}
	p.period = p.period.extend(o.SubmissionTime)

	switch o.Side {
	case Buy:
		p.buyQuantity += o.FilledQuantity
		p.buyCommission = p.buyCommission.Add(o.Commission)
		p.buyGross = p.buyGross.Add(value)
	case Sell:
		p.sellQuantity += o.FilledQuantity
		p.sellCommission = p.sellCommission.Add(o.Commission)
		p.sellGross = p.sellGross.Add(value)
	default:
		return &CalcError{Instrument: p.instrument, Err: fmt.Errorf("order side %v: %w", o.Side, ErrUnknownValue)}
	}
	return nil
}

// settle derives the accounting of a position. Every amount is rounded as
// soon as it is computed, and the next ones use the rounded value.
func (a *Aggregator) settle(p *position) (InstrumentResult, error) {
	r := InstrumentResult{
		Instrument:     p.instrument,
		Currency:       p.currency,
		TradePeriod:    p.period,
		BuyQuantity:    p.buyQuantity,
		SellQuantity:   p.sellQuantity,
		BuyCommission:  p.buyCommission,
		SellCommission: p.sellCommission,
		PurchaseValue:  p.buyGross,
		SaleValue:      p.sellGross,
		DaysToSettle:   p.period.Days(),
	}

	r.CostBasis = r.PurchaseValue.Add(r.BuyCommission)
	r.NetProceeds = r.SaleValue.Sub(r.SellCommission)

	switch {
	case r.BuyQuantity > 0:
		avg, err := r.CostBasis.Per(r.BuyQuantity)
		if err != nil {
			return r, &CalcError{Instrument: p.instrument, Err: fmt.Errorf("average cost basis: %w", err)}
		}
		r.AverageCostBasis = avg
	case r.SellQuantity > 0:
		return r, &CalcError{Instrument: p.instrument, Err: fmt.Errorf("average cost basis: %d units sold but none bought: %w", r.SellQuantity, ErrDivisionByZero)}
	}

	r.TaxBase = r.NetProceeds.Sub(r.AverageCostBasis.Times(r.SellQuantity))
	r.TaxAmount = r.TaxBase.Scale(a.TaxRate)

	if !r.Settled() {
		return r, nil
	}
	r.NetProfit = r.NetProceeds.Sub(r.CostBasis).Sub(r.TaxAmount)
	pct, err := RateOf(r.TaxBase, r.CostBasis)
	if err != nil {
		return r, &CalcError{Instrument: p.instrument, Err: fmt.Errorf("percentage change: %w", err)}
	}
	r.PctChange = pct
	return r, nil
}

// summarize rolls up instrument results. Totals are sums of the rounded
// instrument amounts so they reconcile with the detail rows.
func summarize(results []InstrumentResult) Summary {
	var s Summary
	for i, r := range results {
		if i == 0 {
			s.Currency = r.Currency
		} else if s.Currency != r.Currency {
			s.Currency = ""
		}
		s.TradePeriod = s.TradePeriod.union(r.TradePeriod)
		s.CommissionTotal = s.CommissionTotal.Add(r.TotalCommission())
		s.TaxAmountTotal = s.TaxAmountTotal.Add(r.TaxAmount)
		s.NetProfitTotal = s.NetProfitTotal.Add(r.NetProfit)
	}
	return s
}
