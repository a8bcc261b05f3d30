package capgains

import (
	"errors"
	"testing"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"0.039", "3.9%", false},
		{"3.9%", "3.9%", false},
		{"3,9 %", "3.9%", false},
		{"19%", "19%", false},
		{"-12.5%", "-12.5%", false},
		{"abc%", "", true},
		{"1e-2", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRate(tt.input)
			if tt.wantErr {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("ParseRate(%q) error = %v, want a *ParseError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRate(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseRate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestRateOf(t *testing.T) {
	tests := []struct {
		num, den string
		want     string
	}{
		{"24.00", "33.00", "72.73%"},
		{"-3.00", "33.00", "-9.09%"},
		{"1.00", "8.00", "12.50%"},
		{"0", "10", "0.00%"},
	}
	for _, tt := range tests {
		got, err := RateOf(M(tt.num), M(tt.den))
		if err != nil {
			t.Fatalf("RateOf(%s, %s) unexpected error: %v", tt.num, tt.den, err)
		}
		if got.Percent() != tt.want {
			t.Errorf("RateOf(%s, %s) = %s, want %s", tt.num, tt.den, got.Percent(), tt.want)
		}
	}
	if _, err := RateOf(M("1"), Zero()); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("RateOf(1, 0) error = %v, want ErrDivisionByZero", err)
	}
}

func TestRate_Text(t *testing.T) {
	var r Rate
	if err := r.UnmarshalText([]byte("19%")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	if !r.Equal(DefaultTaxRate) {
		t.Errorf("UnmarshalText() = %s, want %s", r, DefaultTaxRate)
	}
	text, _ := r.MarshalText()
	if string(text) != "19%" {
		t.Errorf("MarshalText() = %s, want 19%%", text)
	}
	if got := R("0.1").SignedString(); got != "+10.00%" {
		t.Errorf("SignedString() = %q, want %q", got, "+10.00%")
	}
}
