package mbank

import (
	"encoding/csv"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/capgains"
)

// Header fields of the order table, lower case.
const (
	fieldStatus          = "stan"
	fieldInstrument      = "papier"
	fieldExchange        = "giełda"
	fieldSide            = "k/s"
	fieldQuantity        = "liczba zlecona"
	fieldFilledQuantity  = "liczba zrealizowana"
	fieldPriceLimit      = "limit ceny"
	fieldCurrency        = "walute"
	fieldActivationLimit = "limit aktywacji"
	fieldSubmissionTime  = "data zlecenia"
)

// headerFields is the sorted set of fields identifying the header line.
var headerFields = sorted([]string{
	fieldStatus, fieldInstrument, fieldExchange, fieldSide, fieldQuantity,
	fieldFilledQuantity, fieldPriceLimit, fieldCurrency, fieldActivationLimit, fieldSubmissionTime,
})

func sorted(s []string) []string {
	slices.Sort(s)
	return s
}

// canonicalField normalizes a header cell: non-breaking spaces, surrounding
// spaces and case are not significant.
func canonicalField(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " ")))
}

// isHeader reports whether 'line' holds exactly the header fields, in any order.
//
// Cells are split the way the table rows are, so quoted cells are accepted.
func isHeader(line string) bool {
	r := csv.NewReader(strings.NewReader(strings.TrimRight(line, "\r")))
	r.Comma = ';'
	r.LazyQuotes = true
	cells, err := r.Read()
	if err != nil || len(cells) != len(headerFields) {
		return false
	}
	for i, c := range cells {
		cells[i] = canonicalField(c)
	}
	slices.Sort(cells)
	return slices.Equal(cells, headerFields)
}

// findHeader returns the 0-based index of the header line, skipping any preamble.
func findHeader(lines []string) (int, error) {
	for i, line := range lines {
		if isHeader(line) {
			return i, nil
		}
	}
	return 0, &capgains.ParseError{Err: fmt.Errorf("expected fields %s: %w", strings.Join(headerFields, ";"), capgains.ErrHeaderNotFound)}
}
