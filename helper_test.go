package capgains

import "time"

// at is a helper for test to create an UTC submission time.
func at(day int, month time.Month, hour int) time.Time {
	return time.Date(2025, month, day, hour, 0, 0, 0, time.UTC)
}

// pm is a helper for test to create a price.
func pm(s string) *Money {
	m := M(s)
	return &m
}

// buy is a helper for test to create a filled buy order of 'qty' units at 'price'.
func buy(instrument string, when time.Time, qty int64, price, commission string) TradeOrder {
	return TradeOrder{
		Instrument:     instrument,
		OrderType:      Limit,
		Side:           Buy,
		Quantity:       qty,
		FilledQuantity: qty,
		Price:          pm(price),
		Commission:     M(commission),
		Status:         Filled,
		SubmissionTime: when,
		Currency:       "PLN",
		Exchange:       "WWA-GPW",
	}
}

// sell is like buy for the sell side.
func sell(instrument string, when time.Time, qty int64, price, commission string) TradeOrder {
	o := buy(instrument, when, qty, price, commission)
	o.Side = Sell
	return o
}

// withStatus returns o with status 's'.
func withStatus(o TradeOrder, s Status) TradeOrder {
	o.Status = s
	return o
}
