package mbank

import (
	"errors"
	"testing"

	"github.com/etnz/capgains"
)

func TestFindHeader(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"first line", []string{header, "row"}, 0},
		{"after preamble", []string{"Historia zleceń", "Rachunek: 1", "", header}, 3},
		{"any order and case", []string{"x", "DATA ZLECENIA;Stan;papier;GIEŁDA;k/s;Liczba zlecona;Liczba zrealizowana;Limit ceny;Walute;Limit aktywacji"}, 1},
		{"non breaking spaces", []string{"Stan;Papier;Giełda;K/S;Liczba\u00a0zlecona;Liczba\u00a0zrealizowana;Limit ceny; Walute ;Limit aktywacji;Data zlecenia\r"}, 0},
		{"quoted cells", []string{"preamble", `"Stan";"Papier";"Giełda";"K/S";"Liczba zlecona";"Liczba zrealizowana";"Limit ceny";"Walute";"Limit aktywacji";"Data zlecenia"`}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := findHeader(tc.lines)
			if err != nil {
				t.Fatalf("findHeader() unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("findHeader() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFindHeader_NotFound(t *testing.T) {
	for _, lines := range [][]string{
		nil,
		{"Stan;Papier;Giełda"},
		{header + ";Extra"},
	} {
		_, err := findHeader(lines)
		if !errors.Is(err, capgains.ErrHeaderNotFound) {
			t.Errorf("findHeader(%q) error = %v, want ErrHeaderNotFound", lines, err)
		}
	}
}
