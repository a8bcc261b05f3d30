package date

import (
	"encoding/json"
	"time"
)

// DateFormat is the ISO-8601 day format used in JSON.
const DateFormat = "2006-01-02"

// LocalFormat is the day-first format used by the brokerage exports and reports.
const LocalFormat = "02.01.2006"

const Day = 24 * time.Hour

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the day of 't' in the location of 't'.
func Of(t time.Time) Date { return New(t.Date()) }

// String formats the date as "2025-07-14".
func (d Date) String() string { return d.time().Format(DateFormat) }

// Local formats the date day first, "14.07.2025".
func (d Date) Local() string { return d.time().Format(LocalFormat) }

// DaysBetween returns the number of whole days elapsed from 'from' to 'to'.
// It is negative when 'to' is before 'from'.
func DaysBetween(from, to time.Time) int { return int(to.Sub(from) / Day) }

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

var _ json.Marshaler = Date{}
