package capgains

// CommissionPolicy is a brokerage fee schedule: a rate on the order value with a minimum charge.
type CommissionPolicy struct {
	Rate    Rate
	Minimum Money
}

// MBankCommission is the mBank eMakler schedule for exchange traded stocks.
var MBankCommission = CommissionPolicy{Rate: R("3.9%"), Minimum: M("5.00")}

// Charge returns the commission due for an order worth 'notional'.
func (p CommissionPolicy) Charge(notional Money) Money {
	return notional.Scale(p.Rate).Max(p.Minimum)
}
