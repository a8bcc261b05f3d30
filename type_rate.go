package capgains

import (
	"strings"

	"github.com/shopspring/decimal"
)

// rateScale is the number of fractional digits kept by RateOf, two digits of percent.
const rateScale = 4

// Rate is an exact fraction, 0.19 for 19%.
type Rate struct {
	value decimal.Decimal
}

// ParseRate parses "0.039", "3.9%" or "3,9 %".
func ParseRate(s string) (Rate, error) {
	str := strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	percent := strings.HasSuffix(str, "%")
	str = strings.TrimSpace(strings.TrimSuffix(str, "%"))
	if strings.ContainsAny(str, "eE") {
		return Rate{}, fieldError("rate", s, errExponent)
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return Rate{}, fieldError("rate", s, err)
	}
	if percent {
		d = d.Shift(-2)
	}
	return Rate{value: d}, nil
}

// R is like ParseRate but panics on error.
func R(s string) Rate {
	r, err := ParseRate(s)
	if err != nil {
		panic(err)
	}
	return r
}

// RateOf returns num/den rounded half to even to two digits of percent.
func RateOf(num, den Money) (Rate, error) {
	q, err := divRoundBank(num.value, den.value, rateScale)
	if err != nil {
		return Rate{}, err
	}
	return Rate{value: q}, nil
}

func (r Rate) Equal(q Rate) bool { return r.value.Equal(q.value) }
func (r Rate) IsZero() bool      { return r.value.IsZero() }

// Decimal returns the fraction as a decimal.
func (r Rate) Decimal() decimal.Decimal { return r.value }

// String formats the rate as a percent, "19%", "3.9%", "-12.5%".
func (r Rate) String() string { return r.value.Shift(2).String() + "%" }

// Percent formats the rate as a percent with two decimals, "72.73%".
func (r Rate) Percent() string { return r.value.Shift(2).StringFixedBank(2) + "%" }

// SignedString is like Percent with an explicit sign, zero is "-".
func (r Rate) SignedString() string {
	switch {
	case r.value.IsZero():
		return "-"
	case r.value.IsPositive():
		return "+" + r.Percent()
	default:
		return r.Percent()
	}
}

// MarshalJSON encodes the rate as a JSON number fraction.
func (r Rate) MarshalJSON() ([]byte, error) { return []byte(r.value.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler, used by flag and config decoding.
func (r *Rate) UnmarshalText(text []byte) error {
	v, err := ParseRate(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Rate) MarshalText() ([]byte, error) { return []byte(r.String()), nil }
