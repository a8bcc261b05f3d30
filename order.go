package capgains

import "time"

// TradeOrder is one brokerage execution record, as exported by the brokerage.
type TradeOrder struct {
	Instrument     string // symbol or identifier of the instrument, e.g. "PKNORLEN"
	InstrumentType InstrumentType
	OrderType      OrderType
	Side           Side
	Quantity       int64  // ordered units
	FilledQuantity int64  // executed units, never more than Quantity
	Price          *Money // limit price, nil for market orders
	Commission     Money
	Status         Status
	SubmissionTime time.Time // UTC
	Currency       string    // ISO code, e.g. "PLN"
	Exchange       string
}

// Eligible reports whether the order takes part in profit computation.
func (o TradeOrder) Eligible() bool { return o.Status.Executed() }

// Value returns the gross notional of the executed part, price times filled quantity.
// It is false for orders without a price.
func (o TradeOrder) Value() (Money, bool) {
	if o.Price == nil {
		return Money{}, false
	}
	return o.Price.Times(o.FilledQuantity), true
}
