package capgains

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/capgains/date"
)

type failingMarshaler struct{}

func (failingMarshaler) MarshalJSON() ([]byte, error) { return nil, errors.New("boom") }

type listMarshaler struct{}

func (listMarshaler) MarshalJSON() ([]byte, error) { return []byte(`[1]`), nil }

func TestJsonObjectWriter(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *jsonObjectWriter)
		want  string
	}{
		{
			name:  "empty object",
			write: func(w *jsonObjectWriter) {},
			want:  `{}`,
		},
		{
			name: "money keeps two decimals",
			write: func(w *jsonObjectWriter) {
				w.Money("tax", M("456")).Money("profit", M("-0.5"))
			},
			want: `{"tax":456.00,"profit":-0.50}`,
		},
		{
			name: "rate and integers",
			write: func(w *jsonObjectWriter) {
				w.Rate("pctChange", R("72.73%")).Int("days", 0).Int("units", -3)
			},
			want: `{"pctChange":0.7273,"days":0,"units":-3}`,
		},
		{
			name: "optional currency",
			write: func(w *jsonObjectWriter) {
				w.OptionalString("currency", "").OptionalString("exchange", "WWA-GPW")
			},
			want: `{"exchange":"WWA-GPW"}`,
		},
		{
			name: "strings are escaped",
			write: func(w *jsonObjectWriter) {
				w.String("instrument", `ŻABKA "A"`)
			},
			want: `{"instrument":"ŻABKA \"A\""}`,
		},
		{
			name: "time and day",
			write: func(w *jsonObjectWriter) {
				w.Time("start", time.Date(2025, time.July, 14, 17, 20, 25, 0, time.UTC))
				w.Day("day", date.New(2025, time.July, 14))
			},
			want: `{"start":"2025-07-14T17:20:25Z","day":"2025-07-14"}`,
		},
		{
			name: "embed summary fields",
			write: func(w *jsonObjectWriter) {
				w.Embed(Summary{CommissionTotal: M("6"), TaxAmountTotal: M("4.56"), NetProfitTotal: M("19.44")})
				w.Append("instruments", []string{})
			},
			want: `{"tradePeriod":{"start":"0001-01-01T00:00:00Z","end":"0001-01-01T00:00:00Z"},"commissionTotal":6.00,"taxAmountTotal":4.56,"netProfitTotal":19.44,"instruments":[]}`,
		},
		{
			name: "embed after members",
			write: func(w *jsonObjectWriter) {
				w.Int("n", 1)
				var inner jsonObjectWriter
				inner.Int("m", 2)
				w.Embed(&inner)
			},
			want: `{"n":1,"m":2}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w jsonObjectWriter
			tt.write(&w)
			got, err := w.MarshalJSON()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJsonObjectWriter_Errors(t *testing.T) {
	for name, v := range map[string]interface {
		MarshalJSON() ([]byte, error)
	}{
		"failing value": failingMarshaler{},
		"not an object": listMarshaler{},
	} {
		t.Run(name, func(t *testing.T) {
			var w jsonObjectWriter
			w.Embed(v).Int("ignored", 1)
			if _, err := w.MarshalJSON(); err == nil {
				t.Error("MarshalJSON() expected an error")
			}
		})
	}
}
