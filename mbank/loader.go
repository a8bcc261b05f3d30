// Package mbank loads the order history exported by the mBank eMakler
// brokerage into trade orders.
package mbank

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/capgains"
	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding"
)

// DefaultTimezone is the time zone of the export timestamps.
const DefaultTimezone = "Europe/Warsaw"

// Loader reads eMakler exports. Its fields can be changed before use.
type Loader struct {
	Encoding   encoding.Encoding
	Location   *time.Location
	Commission capgains.CommissionPolicy
}

// New returns a loader with the eMakler defaults.
func New() *Loader {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		// tzdata is embedded by the date package.
		panic(err)
	}
	return &Loader{Encoding: DefaultEncoding, Location: loc, Commission: capgains.MBankCommission}
}

// NewLoader returns a loader for exports in the IANA encoding 'encodingName'
// with timestamps in 'timezone'. Empty values keep the defaults.
func NewLoader(encodingName, timezone string, commission capgains.CommissionPolicy) (*Loader, error) {
	l := New()
	l.Commission = commission
	if encodingName != "" {
		enc, err := LookupEncoding(encodingName)
		if err != nil {
			return nil, err
		}
		l.Encoding = enc
	}
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("unknown time zone %q: %w", timezone, err)
		}
		l.Location = loc
	}
	return l, nil
}

// Load reads the export at 'path' with the default loader.
func Load(path string) ([]capgains.TradeOrder, error) { return New().Load(path) }

// Load reads the export at 'path'.
func (l *Loader) Load(path string) ([]capgains.TradeOrder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &capgains.LoadError{Path: path, Err: err}
	}
	return l.Read(bytes.NewReader(data))
}

// Read decodes an export and returns its orders in file order.
//
// The first error aborts the read: either a *capgains.LoadError or a
// *capgains.ParseError locating the faulty line.
func (l *Loader) Read(r io.Reader) ([]capgains.TradeOrder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &capgains.LoadError{Err: err}
	}
	text, err := decode(l.Encoding, data)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	start, err := findHeader(lines)
	if err != nil {
		return nil, err
	}

	table := newTableReader(strings.NewReader(strings.Join(lines[start:], "\n")), start)
	var records []record
	if err := gocsv.UnmarshalCSV(table, &records); err != nil {
		var perr *capgains.ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &capgains.ParseError{Line: start + 1, Err: err}
	}

	m := mapper{location: l.Location, commission: l.Commission}
	orders := make([]capgains.TradeOrder, 0, len(records))
	for i, rec := range records {
		o, err := m.order(rec)
		if err != nil {
			var perr *capgains.ParseError
			if errors.As(err, &perr) {
				perr.Line = table.lines[i]
			}
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
