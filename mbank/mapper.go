package mbank

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
)

// statuses maps the lower case export vocabulary.
var statuses = map[string]capgains.Status{
	"przyjęte":               capgains.Pending,
	"częściowo zrealizowane": capgains.PartiallyFilled,
	"zrealizowane":           capgains.Filled,
	"zamknięte":              capgains.Closed,
	"anulowane":              capgains.Cancelled,
	"odrzucone":              capgains.Rejected,
	"wygasłe":                capgains.Expired,
}

// mapper converts records into trade orders.
type mapper struct {
	location   *time.Location
	commission capgains.CommissionPolicy
}

// order maps a record, stopping at the first invalid field.
func (m mapper) order(r record) (capgains.TradeOrder, error) {
	o := capgains.TradeOrder{
		Instrument:     strings.TrimSpace(r.Instrument),
		InstrumentType: capgains.Stock,
		Currency:       strings.ToUpper(strings.TrimSpace(r.Currency)),
		Exchange:       strings.TrimSpace(r.Exchange),
	}
	var err error
	if o.Side, err = side(r.Side); err != nil {
		return o, err
	}
	if o.Status, err = status(r.Status); err != nil {
		return o, err
	}
	if o.OrderType, err = orderType(r); err != nil {
		return o, err
	}
	if o.Price, err = price(r); err != nil {
		return o, err
	}
	if o.Quantity, o.FilledQuantity, err = quantities(r); err != nil {
		return o, err
	}
	o.Commission = m.charge(o)
	if o.SubmissionTime, err = m.submissionTime(r.SubmissionTime); err != nil {
		return o, err
	}
	return o, nil
}

func side(s string) (capgains.Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "K":
		return capgains.Buy, nil
	case "S":
		return capgains.Sell, nil
	default:
		return 0, &capgains.ParseError{Field: fieldSide, Value: s, Err: capgains.ErrUnknownValue}
	}
}

func status(s string) (capgains.Status, error) {
	st, ok := statuses[canonicalField(s)]
	if !ok {
		return 0, &capgains.ParseError{Field: fieldStatus, Value: s, Err: capgains.ErrUnknownValue}
	}
	return st, nil
}

// orderType infers the type from the limits: an activation limit makes a
// stop limit order, a price limit alone a limit order.
func orderType(r record) (capgains.OrderType, error) {
	switch {
	case strings.TrimSpace(r.ActivationLimit) != "":
		return capgains.StopLimit, nil
	case strings.TrimSpace(r.PriceLimit) != "":
		return capgains.Limit, nil
	default:
		return 0, &capgains.ParseError{Field: fieldPriceLimit, Value: r.PriceLimit, Err: fmt.Errorf("no price nor activation limit: %w", capgains.ErrMissingData)}
	}
}

// price is the price limit, nil when blank.
func price(r record) (*capgains.Money, error) {
	s := number(r.PriceLimit)
	if s == "" {
		return nil, nil
	}
	p, err := capgains.ParseMoney(s)
	if err != nil {
		var perr *capgains.ParseError
		if errors.As(err, &perr) {
			err = perr.Err
		}
		return nil, &capgains.ParseError{Field: fieldPriceLimit, Value: r.PriceLimit, Err: err}
	}
	return &p, nil
}

func quantities(r record) (quantity, filled int64, err error) {
	if quantity, err = count(fieldQuantity, r.Quantity); err != nil {
		return 0, 0, err
	}
	if filled, err = count(fieldFilledQuantity, r.FilledQuantity); err != nil {
		return 0, 0, err
	}
	if filled > quantity {
		return 0, 0, &capgains.ParseError{Field: fieldFilledQuantity, Value: r.FilledQuantity, Err: fmt.Errorf("more than the %d ordered", quantity)}
	}
	return quantity, filled, nil
}

func count(field, s string) (int64, error) {
	n, err := strconv.ParseInt(number(s), 10, 64)
	if err != nil {
		return 0, &capgains.ParseError{Field: field, Value: s, Err: err}
	}
	if n < 0 {
		return 0, &capgains.ParseError{Field: field, Value: s, Err: errors.New("negative quantity")}
	}
	return n, nil
}

// number strips thousands separators from a numeric cell.
func number(s string) string {
	return strings.NewReplacer(" ", "", "\u00a0", "").Replace(strings.TrimSpace(s))
}

// charge computes the commission on the executed value. The export carries none.
func (m mapper) charge(o capgains.TradeOrder) capgains.Money {
	value, ok := o.Value()
	if !ok {
		value = capgains.Zero()
	}
	return m.commission.Charge(value)
}

func (m mapper) submissionTime(s string) (time.Time, error) {
	civil, err := date.ParseCivil(date.CivilFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &capgains.ParseError{Field: fieldSubmissionTime, Value: s, Err: err}
	}
	t, err := date.Resolve(civil, m.location)
	if err != nil {
		return time.Time{}, &capgains.ParseError{Field: fieldSubmissionTime, Value: s, Err: err}
	}
	return t, nil
}
