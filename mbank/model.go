package mbank

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/etnz/capgains"
)

// record is one line of the order table, bound by header name.
type record struct {
	Status          string `csv:"stan"`
	Instrument      string `csv:"papier"`
	Exchange        string `csv:"giełda"`
	Side            string `csv:"k/s"`
	Quantity        string `csv:"liczba zlecona"`
	FilledQuantity  string `csv:"liczba zrealizowana"`
	PriceLimit      string `csv:"limit ceny"`
	Currency        string `csv:"walute"`
	ActivationLimit string `csv:"limit aktywacji"`
	SubmissionTime  string `csv:"data zlecenia"`
}

// tableReader reads the order table for gocsv.
//
// It canonicalizes the header cells so that they match the record tags, keeps
// the line number of every data row, and reports malformed rows as
// *capgains.ParseError on the line of the decoded input.
type tableReader struct {
	csv    *csv.Reader
	offset int   // lines before the header
	header bool  // header already read
	lines  []int // 1-based input line of each data row
}

func newTableReader(r io.Reader, offset int) *tableReader {
	c := csv.NewReader(r)
	c.Comma = ';'
	c.LazyQuotes = true
	c.FieldsPerRecord = 0 // every row must have as many fields as the header
	return &tableReader{csv: c, offset: offset}
}

func (t *tableReader) Read() ([]string, error) {
	row, err := t.csv.Read()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &capgains.ParseError{Line: t.offset + perr.Line, Err: perr.Err}
		}
		return nil, &capgains.ParseError{Err: err}
	}
	if !t.header {
		t.header = true
		for i, c := range row {
			row[i] = canonicalField(c)
		}
		return row, nil
	}
	line, _ := t.csv.FieldPos(0)
	t.lines = append(t.lines, t.offset+line)
	return row, nil
}

func (t *tableReader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := t.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
