package capgains

import "fmt"

// SideSummary totals the executed orders of one side.
type SideSummary struct {
	Orders     int
	Quantity   int64
	Value      Money
	Commission Money
}

func (s SideSummary) add(o TradeOrder, value Money) SideSummary {
	s.Orders++
	s.Quantity += o.FilledQuantity
	s.Value = s.Value.Add(value)
	s.Commission = s.Commission.Add(o.Commission)
	return s
}

// GeneralReport is an overview of an order export, independent of instruments.
type GeneralReport struct {
	TradePeriod TradePeriod
	Buy         SideSummary
	Sell        SideSummary
	Instruments int // distinct instruments with executed orders
	Orders      int // all orders, executed or not
}

// NewGeneralReport computes the overview of 'orders'. Like Aggregate, it
// only accounts for executed orders.
func NewGeneralReport(orders []TradeOrder) (*GeneralReport, error) {
	g := &GeneralReport{Orders: len(orders)}
	instruments := make(map[string]struct{})
	for _, o := range orders {
		if !o.Eligible() {
			continue
		}
		value, ok := o.Value()
		if !ok {
			return nil, &CalcError{Instrument: o.Instrument, Err: fmt.Errorf("order at %s has no price: %w", o.SubmissionTime, ErrMissingData)}
		}
		instruments[o.Instrument] = struct{}{}
		g.TradePeriod = g.TradePeriod.extend(o.SubmissionTime)
		switch o.Side {
		case Buy:
			g.Buy = g.Buy.add(o, value)
		case Sell:
			g.Sell = g.Sell.add(o, value)
		}
	}
	if len(instruments) == 0 {
		return nil, &CalcError{Err: fmt.Errorf("no executed orders: %w", ErrMissingData)}
	}
	g.Instruments = len(instruments)
	return g, nil
}
