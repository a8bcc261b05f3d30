package capgains

import (
	"time"

	"github.com/etnz/capgains/date"
)

// TradePeriod spans the submission times of a set of orders, bounds included.
type TradePeriod struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the period has never been extended.
func (p TradePeriod) IsZero() bool { return p.Start.IsZero() && p.End.IsZero() }

// Days returns the whole number of days between start and end.
func (p TradePeriod) Days() int { return date.DaysBetween(p.Start, p.End) }

// extend returns the smallest period containing both p and t.
func (p TradePeriod) extend(t time.Time) TradePeriod {
	if p.IsZero() {
		return TradePeriod{Start: t, End: t}
	}
	if t.Before(p.Start) {
		p.Start = t
	}
	if t.After(p.End) {
		p.End = t
	}
	return p
}

// union returns the smallest period containing both p and q.
func (p TradePeriod) union(q TradePeriod) TradePeriod {
	if q.IsZero() {
		return p
	}
	return p.extend(q.Start).extend(q.End)
}

// InstrumentResult is the average cost basis accounting of a single instrument.
type InstrumentResult struct {
	Instrument  string
	Currency    string // empty when orders were in several currencies
	TradePeriod TradePeriod

	BuyQuantity    int64
	SellQuantity   int64
	BuyCommission  Money
	SellCommission Money
	PurchaseValue  Money // gross value of buys
	SaleValue      Money // gross value of sells

	CostBasis        Money // PurchaseValue + BuyCommission
	NetProceeds      Money // SaleValue - SellCommission
	AverageCostBasis Money // CostBasis per unit bought
	TaxBase          Money
	TaxAmount        Money
	NetProfit        Money // zero until something is sold
	PctChange        Rate  // TaxBase over CostBasis, zero until something is sold
	DaysToSettle     int
}

// Settled reports whether some units have been sold. Profit is only meaningful then.
func (r InstrumentResult) Settled() bool { return r.SellQuantity > 0 }

// TotalCommission returns commissions paid on both sides.
func (r InstrumentResult) TotalCommission() Money { return r.BuyCommission.Add(r.SellCommission) }

// Summary is the portfolio roll-up of all instrument results.
type Summary struct {
	TradePeriod     TradePeriod
	Currency        string // empty when instruments were in several currencies
	CommissionTotal Money
	TaxAmountTotal  Money
	NetProfitTotal  Money
}

// Report is the profit report: a summary and the instruments sorted by symbol.
type Report struct {
	Summary     Summary
	Instruments []InstrumentResult
}
