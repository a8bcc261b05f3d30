package mbank

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/etnz/capgains"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"
)

const header = "Stan;Papier;Giełda;K/S;Liczba zlecona;Liczba zrealizowana;Limit ceny;Walute;Limit aktywacji;Data zlecenia"

// export encodes lines as an eMakler export.
func export(t *testing.T, lines ...string) string {
	t.Helper()
	s, err := charmap.Windows1250.NewEncoder().String(strings.Join(lines, "\r\n") + "\r\n")
	if err != nil {
		t.Fatalf("cannot encode test export: %v", err)
	}
	return s
}

func limit(s string) *capgains.Money {
	m := capgains.M(s)
	return &m
}

func TestLoad(t *testing.T) {
	orders, err := Load(filepath.Join("testdata", "eMAKLER_historia_zlecen.csv"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(orders) != 7 {
		t.Fatalf("Load() got %d orders, want 7", len(orders))
	}

	want := []capgains.TradeOrder{
		{
			Instrument:     "ABC",
			InstrumentType: capgains.Stock,
			OrderType:      capgains.Limit,
			Side:           capgains.Buy,
			Quantity:       1,
			FilledQuantity: 1,
			Price:          limit("10.00"),
			Commission:     capgains.M("5.00"),
			Status:         capgains.Filled,
			SubmissionTime: time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC),
			Currency:       "PLN",
			Exchange:       "WWA-GPW",
		},
		{
			Instrument:     "PKNORLEN",
			InstrumentType: capgains.Stock,
			OrderType:      capgains.StopLimit,
			Side:           capgains.Buy,
			Quantity:       200,
			FilledQuantity: 150,
			Price:          limit("60.00"),
			Commission:     capgains.M("351.00"),
			Status:         capgains.PartiallyFilled,
			SubmissionTime: time.Date(2025, time.July, 16, 8, 30, 0, 0, time.UTC),
			Currency:       "PLN",
			Exchange:       "WWA-GPW",
		},
		{
			Instrument:     "CDR",
			InstrumentType: capgains.Stock,
			OrderType:      capgains.Limit,
			Side:           capgains.Buy,
			Quantity:       1,
			FilledQuantity: 0,
			Price:          limit("1234.50"),
			Commission:     capgains.M("5.00"),
			Status:         capgains.Rejected,
			SubmissionTime: time.Date(2025, time.January, 14, 18, 20, 25, 0, time.UTC),
			Currency:       "PLN",
			Exchange:       "WWA-GPW",
		},
	}
	got := []capgains.TradeOrder{orders[0], orders[4], orders[6]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	statuses := []capgains.Status{capgains.Filled, capgains.Filled, capgains.Filled, capgains.Cancelled, capgains.PartiallyFilled, capgains.Closed, capgains.Rejected}
	for i, o := range orders {
		if o.Status != statuses[i] {
			t.Errorf("order %d status = %v, want %v", i, o.Status, statuses[i])
		}
	}
}

func TestLoad_Aggregate(t *testing.T) {
	orders, err := Load(filepath.Join("testdata", "eMAKLER_historia_zlecen.csv"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	report, err := capgains.Aggregate(orders)
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	header, rows := report.Table("Instrument", "Cost Basis", "Net Proceeds", "Average Cost Basis", "Tax Base", "Tax", "Net Profit")
	want := [][]string{
		{"ABC", "40.00", "55.00", "13.33", "15.01", "2.85", "12.15"},
		{"PKNORLEN", "9351.00", "0.00", "62.34", "0.00", "0.00", "0.00"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("report %v mismatch (-want +got):\n%s", header, diff)
	}
	if got := report.Summary.CommissionTotal.String(); got != "366.00" {
		t.Errorf("CommissionTotal = %s, want 366.00", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "this_file_does_not_exist.csv"))
	var lerr *capgains.LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("Load() error = %v, want a *capgains.LoadError", err)
	}
	if !strings.Contains(err.Error(), "failed to open file") {
		t.Errorf("Load() error = %q, want it to mention the file could not be opened", err)
	}
}

func TestRead_Errors(t *testing.T) {
	row := "Zrealizowane;ABC;WWA-GPW;K;1;1;10,00;PLN;;01.07.2025 11:00:00"
	tests := []struct {
		name      string
		input     string
		wantErr   error // optional sentinel
		wantLine  int
		wantField string
	}{
		{
			name:    "no header",
			input:   "Historia zleceń\r\n" + row + "\r\n",
			wantErr: capgains.ErrHeaderNotFound,
		},
		{
			name:     "missing field",
			input:    "preamble\r\n" + header + "\r\n" + row + "\r\nZrealizowane;ABC;WWA-GPW;K;1;1;10,00;PLN;01.07.2025 11:00:00\r\n",
			wantLine: 4,
		},
		{
			name:      "unknown side",
			input:     header + "\r\n" + strings.Replace(row, ";K;", ";B;", 1) + "\r\n",
			wantErr:   capgains.ErrUnknownValue,
			wantLine:  2,
			wantField: "k/s",
		},
		{
			name:      "unknown status",
			input:     header + "\r\n" + strings.Replace(row, "Zrealizowane", "Zawieszone", 1) + "\r\n",
			wantErr:   capgains.ErrUnknownValue,
			wantLine:  2,
			wantField: "stan",
		},
		{
			name:      "no limits",
			input:     header + "\r\n" + strings.Replace(row, ";10,00;", ";;", 1) + "\r\n",
			wantErr:   capgains.ErrMissingData,
			wantLine:  2,
			wantField: "limit ceny",
		},
		{
			name:      "invalid price",
			input:     header + "\r\n" + strings.Replace(row, ";10,00;", ";1O,00;", 1) + "\r\n",
			wantLine:  2,
			wantField: "limit ceny",
		},
		{
			name:      "overfilled",
			input:     header + "\r\n" + strings.Replace(row, ";1;1;", ";1;2;", 1) + "\r\n",
			wantLine:  2,
			wantField: "liczba zrealizowana",
		},
		{
			name:      "invalid date",
			input:     header + "\r\n" + strings.Replace(row, "01.07.2025", "2025-07-01", 1) + "\r\n",
			wantLine:  2,
			wantField: "data zlecenia",
		},
		{
			name:      "ambiguous time",
			input:     header + "\r\n" + strings.Replace(row, "01.07.2025 11:00:00", "26.10.2025 02:30:00", 1) + "\r\n",
			wantErr:   capgains.ErrAmbiguousTime,
			wantLine:  2,
			wantField: "data zlecenia",
		},
		{
			name:      "nonexistent time",
			input:     header + "\r\n" + strings.Replace(row, "01.07.2025 11:00:00", "30.03.2025 02:30:00", 1) + "\r\n",
			wantErr:   capgains.ErrNonexistentTime,
			wantLine:  2,
			wantField: "data zlecenia",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input, err := charmap.Windows1250.NewEncoder().String(tc.input)
			if err != nil {
				t.Fatalf("cannot encode test export: %v", err)
			}
			_, err = New().Read(strings.NewReader(input))
			var perr *capgains.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Read() error = %v, want a *capgains.ParseError", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Read() error = %v, want %v", err, tc.wantErr)
			}
			if perr.Line != tc.wantLine {
				t.Errorf("ParseError.Line = %d, want %d", perr.Line, tc.wantLine)
			}
			if perr.Field != tc.wantField {
				t.Errorf("ParseError.Field = %q, want %q", perr.Field, tc.wantField)
			}
		})
	}
}

func TestRead_UnmappableByte(t *testing.T) {
	input := export(t, "preamble", header) + "Zrealizowane;AB\x81C;WWA-GPW;K;1;1;10,00;PLN;;01.07.2025 11:00:00\r\n"
	_, err := New().Read(strings.NewReader(input))
	var perr *capgains.ParseError
	if !errors.As(err, &perr) || !errors.Is(err, capgains.ErrUnmappableByte) {
		t.Fatalf("Read() error = %v, want a *capgains.ParseError with ErrUnmappableByte", err)
	}
	if perr.Line != 3 {
		t.Errorf("ParseError.Line = %d, want 3", perr.Line)
	}
}

func TestRead_QuotedHeader(t *testing.T) {
	quoted := `"` + strings.ReplaceAll(header, ";", `";"`) + `"`
	input := export(t, "preamble", quoted, `"Zrealizowane";"ABC";"WWA-GPW";"K";"1";"1";"10,00";"PLN";"";"01.07.2025 11:00:00"`)
	orders, err := New().Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].Instrument != "ABC" || orders[0].FilledQuantity != 1 {
		t.Errorf("Read() = %+v, want one ABC order of 1 unit", orders)
	}
}

func TestRead_ReaderFailure(t *testing.T) {
	_, err := New().Read(iotest.ErrReader(errors.New("connection reset")))
	var lerr *capgains.LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("Read() error = %v, want a *capgains.LoadError", err)
	}
	if msg := err.Error(); strings.Contains(msg, "open file") || !strings.Contains(msg, "connection reset") {
		t.Errorf("Read() error = %q, want a read failure mentioning the cause", msg)
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	orders, err := New().Read(strings.NewReader(export(t, "preamble", header)))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("Read() got %d orders, want 0", len(orders))
	}
}

func TestNewLoader(t *testing.T) {
	l, err := NewLoader("ISO-8859-2", "UTC", capgains.CommissionPolicy{Rate: capgains.R("0.5%"), Minimum: capgains.M("1")})
	if err != nil {
		t.Fatalf("NewLoader() unexpected error: %v", err)
	}
	input, err := charmap.ISO8859_2.NewEncoder().String(header + "\n" + "Zrealizowane;ABC;WWA-GPW;K;10;10;100,00;PLN;;01.07.2025 11:00:00\n")
	if err != nil {
		t.Fatalf("cannot encode test export: %v", err)
	}
	orders, err := l.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	o := orders[0]
	if want := time.Date(2025, time.July, 1, 11, 0, 0, 0, time.UTC); !o.SubmissionTime.Equal(want) {
		t.Errorf("SubmissionTime = %v, want %v", o.SubmissionTime, want)
	}
	if got := o.Commission.String(); got != "5.00" {
		t.Errorf("Commission = %s, want 5.00", got)
	}

	if _, err := NewLoader("no-such-encoding", "", capgains.MBankCommission); err == nil {
		t.Error("NewLoader() with an unknown encoding succeeded, want an error")
	}
	if _, err := NewLoader("", "Mars/Olympus", capgains.MBankCommission); err == nil {
		t.Error("NewLoader() with an unknown time zone succeeded, want an error")
	}
}
