package capgains

import (
	"errors"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits every Money value carries.
const moneyScale = 2

// Money represents an exact monetary value with two fractional digits.
//
// Every operation returns a value at that scale. When a result would carry
// more digits (products, quotients, rates) it is rounded half to even at once,
// so later computations work on the rounded value.
//
// Money holds a big integer, so == and map keys compare representations, not
// amounts. Use Equal, or Key for maps.
type Money struct {
	value decimal.Decimal // always at moneyScale
}

// Zero returns a zero amount.
func Zero() Money { return Money{value: decimal.New(0, -moneyScale)} }

// FromMinorUnits returns the amount made of 'units' hundredths, exactly.
func FromMinorUnits(units int64) Money { return Money{value: decimal.New(units, -moneyScale)} }

// M is a convenient factory, mostly for tests and constants. It panics if s is not a valid amount.
func M(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney parses a human entered amount like "12,5", "1000.00" or "-3".
//
// A comma is accepted as the decimal separator and a blank string is zero.
// Extra fractional digits are rounded half to even. Exponents are rejected.
func ParseMoney(s string) (Money, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return Zero(), nil
	}
	if strings.ContainsAny(str, "eE") {
		return Money{}, fieldError("amount", s, errExponent)
	}
	str = strings.ReplaceAll(str, ",", ".")
	d, err := decimal.NewFromString(str)
	if err != nil {
		return Money{}, fieldError("amount", s, err)
	}
	return newMoney(d), nil
}

var errExponent = errors.New("exponent notation not allowed")

// newMoney rescales d to the money scale.
func newMoney(d decimal.Decimal) Money { return Money{value: d.RoundBank(moneyScale)} }

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value.RoundBank(moneyScale) }

// MinorUnits returns the value as an integer number of hundredths.
func (m Money) MinorUnits() int64 { return m.value.Shift(moneyScale).IntPart() }

// Key returns a comparable form of the amount, equal for equal amounts.
func (m Money) Key() int64 { return m.MinorUnits() }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) Cmp(n Money) int                 { return m.value.Cmp(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }

// binary operators, exact.
func (m Money) Add(n Money) Money { return newMoney(m.value.Add(n.value)) }
func (m Money) Sub(n Money) Money { return newMoney(m.value.Sub(n.value)) }

// Times multiplies by a number of units, exactly.
func (m Money) Times(n int64) Money { return newMoney(m.value.Mul(decimal.NewFromInt(n))) }

// Mul multiplies two money scaled values and rescales the product.
func (m Money) Mul(n Money) Money { return newMoney(m.value.Mul(n.value)) }

// Scale applies a rate to the amount.
func (m Money) Scale(r Rate) Money { return newMoney(m.value.Mul(r.value)) }

// Div divides by another amount, rounding the quotient half to even.
func (m Money) Div(n Money) (Money, error) {
	q, err := divRoundBank(m.value, n.value, moneyScale)
	if err != nil {
		return Money{}, err
	}
	return Money{value: q}, nil
}

// Per divides the amount by a number of units, rounding half to even.
func (m Money) Per(n int64) (Money, error) { return m.Div(Money{value: decimal.NewFromInt(n)}) }

// Max returns the greater of m and n.
func (m Money) Max(n Money) Money {
	if m.LessThan(n) {
		return n
	}
	return m
}

// String returns the amount with exactly two decimals, "1234.50", "-0.07".
func (m Money) String() string { return m.value.StringFixedBank(moneyScale) }

// Format returns the amount formatted for display in 'currency'.
//
// Unknown or empty currencies fall back to String.
func (m Money) Format(currency string) string {
	if currency == "" || money.GetCurrency(currency) == nil {
		return m.String()
	}
	cur := money.GetCurrency(currency)
	if cur.Fraction != moneyScale {
		return m.String() + " " + cur.Code
	}
	return money.New(m.MinorUnits(), currency).Display()
}

// SignedString returns the amount with an explicit sign, zero is "-".
func (m Money) SignedString() string {
	switch {
	case m.IsZero():
		return "-"
	case m.IsPositive():
		return "+" + m.String()
	default:
		return m.String()
	}
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalJSON accepts both JSON numbers and strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by flag and config decoding.
func (m *Money) UnmarshalText(text []byte) error {
	v, err := ParseMoney(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Money) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// MarshalCSV implements gocsv's TypeMarshaller.
func (m Money) MarshalCSV() (string, error) { return m.String(), nil }

// UnmarshalCSV implements gocsv's TypeUnmarshaller.
func (m *Money) UnmarshalCSV(s string) error {
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// divRoundBank returns a/b rounded half to even to 'places' fractional digits.
//
// shopspring's Div truncates to a fixed precision before any rounding, so the
// quotient is computed with QuoRem and the remainder decides the last digit.
func divRoundBank(a, b decimal.Decimal, places int32) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}
	q, r := a.QuoRem(b, places)
	if r.IsZero() {
		return q.Round(places), nil
	}
	unit := decimal.New(1, -places)
	// r is bounded by |b|*unit, compare 2|r| with it to find the nearest multiple.
	half := r.Abs().Mul(decimal.NewFromInt(2)).Cmp(b.Abs().Mul(unit))
	odd := q.Shift(places).BigInt().Bit(0) == 1
	if half > 0 || (half == 0 && odd) {
		if a.Sign()*b.Sign() < 0 {
			q = q.Sub(unit)
		} else {
			q = q.Add(unit)
		}
	}
	return q.Round(places), nil
}
