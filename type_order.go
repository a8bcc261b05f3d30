package capgains

import "fmt"

// InstrumentType is the kind of financial instrument traded.
type InstrumentType int

const (
	// Stock is an exchange traded equity.
	Stock InstrumentType = iota
)

func (t InstrumentType) String() string {
	switch t {
	case Stock:
		return "stock"
	default:
		return "unknown"
	}
}

// OrderType is how the order was priced.
type OrderType int

const (
	Market OrderType = iota
	Limit
	StopLimit
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "market"
	case Limit:
		return "limit"
	case StopLimit:
		return "stop-limit"
	default:
		return "unknown"
	}
}

// Side of the order.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses the canonical side name, "buy" or "sell".
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown order side: %q: %w", s, ErrUnknownValue)
	}
}

// Status is the lifecycle state of an order at export time.
type Status int

const (
	Pending Status = iota
	PartiallyFilled
	Filled
	Closed
	Cancelled
	Rejected
	Expired
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case PartiallyFilled:
		return "partially-filled"
	case Filled:
		return "filled"
	case Closed:
		return "closed"
	case Cancelled:
		return "cancelled"
	case Rejected:
		return "rejected"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Executed reports whether some quantity was exchanged under this status.
// Closed orders are not executed.
func (s Status) Executed() bool { return s == Filled || s == PartiallyFilled }
