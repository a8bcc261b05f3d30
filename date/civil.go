package date

import (
	"errors"
	"fmt"
	"time"

	// brokerage time zones must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"
)

// CivilFormat is the layout of order timestamps in brokerage exports.
const CivilFormat = "02.01.2006 15:04:05"

var (
	// ErrAmbiguous is returned when a civil time occurs twice in a location (DST fold).
	ErrAmbiguous = errors.New("ambiguous local time")
	// ErrNonexistent is returned when a civil time is skipped in a location (DST gap).
	ErrNonexistent = errors.New("nonexistent local time")
)

// ParseCivil parses a wall clock reading with no zone information.
// The result is expressed in UTC but only its fields are meaningful.
func ParseCivil(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date time %q want format %q: %w", value, layout, err)
	}
	return t, nil
}

// Resolve returns the unique instant, in UTC, at which the clocks in 'loc'
// showed the civil time 'civil'.
//
// Unlike time.Date, it never picks one side of a transition: a reading that
// occurs twice is ErrAmbiguous and a reading that never occurs is ErrNonexistent.
func Resolve(civil time.Time, loc *time.Location) (time.Time, error) {
	naive := time.Date(civil.Year(), civil.Month(), civil.Day(),
		civil.Hour(), civil.Minute(), civil.Second(), civil.Nanosecond(), time.UTC)

	// Offsets in force a day around the reading cover any single transition.
	var found []time.Time
	seen := map[int]bool{}
	for _, at := range []time.Time{naive.Add(-Day), naive, naive.Add(Day)} {
		_, offset := at.In(loc).Zone()
		if seen[offset] {
			continue
		}
		seen[offset] = true
		candidate := naive.Add(-time.Duration(offset) * time.Second)
		if sameWallClock(candidate.In(loc), naive) {
			found = append(found, candidate.UTC())
		}
	}

	switch len(found) {
	case 0:
		return time.Time{}, fmt.Errorf("%s in %s: %w", naive.Format(CivilFormat), loc, ErrNonexistent)
	case 1:
		return found[0], nil
	default:
		return time.Time{}, fmt.Errorf("%s in %s: %w", naive.Format(CivilFormat), loc, ErrAmbiguous)
	}
}

func sameWallClock(t, naive time.Time) bool {
	y, m, d := t.Date()
	ny, nm, nd := naive.Date()
	return y == ny && m == nm && d == nd &&
		t.Hour() == naive.Hour() && t.Minute() == naive.Minute() &&
		t.Second() == naive.Second() && t.Nanosecond() == naive.Nanosecond()
}
