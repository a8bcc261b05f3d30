package capgains

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/etnz/capgains/date"
)

// jsonObjectWriter builds a JSON object whose members keep the order they are
// written in. Its zero value is an empty object.
//
// The first error is kept and returned by MarshalJSON; later calls are no-ops.
type jsonObjectWriter struct {
	buf bytes.Buffer
	err error
}

// member writes 'key' followed by an already encoded value.
func (w *jsonObjectWriter) member(key string, value []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	if w.buf.Len() > 0 {
		w.buf.WriteByte(',')
	}
	w.buf.WriteString(strconv.Quote(key))
	w.buf.WriteByte(':')
	w.buf.Write(value)
	return w
}

// Money writes an amount as a JSON number with two decimals.
func (w *jsonObjectWriter) Money(key string, m Money) *jsonObjectWriter {
	return w.member(key, []byte(m.String()))
}

// Rate writes a rate as a JSON number, 0.7273 for 72.73%.
func (w *jsonObjectWriter) Rate(key string, r Rate) *jsonObjectWriter {
	return w.member(key, []byte(r.value.String()))
}

func (w *jsonObjectWriter) Int(key string, n int64) *jsonObjectWriter {
	return w.member(key, strconv.AppendInt(nil, n, 10))
}

// Time writes an instant in RFC 3339.
func (w *jsonObjectWriter) Time(key string, t time.Time) *jsonObjectWriter {
	data, err := t.MarshalJSON()
	if err != nil {
		w.err = fmt.Errorf("failed to marshal %q: %w", key, err)
		return w
	}
	return w.member(key, data)
}

// Day writes a day as "2025-07-14".
func (w *jsonObjectWriter) Day(key string, d date.Date) *jsonObjectWriter {
	data, err := d.MarshalJSON()
	if err != nil {
		w.err = fmt.Errorf("failed to marshal %q: %w", key, err)
		return w
	}
	return w.member(key, data)
}

// String writes an escaped JSON string.
func (w *jsonObjectWriter) String(key, s string) *jsonObjectWriter { return w.Append(key, s) }

// OptionalString writes 's' unless it is empty.
func (w *jsonObjectWriter) OptionalString(key, s string) *jsonObjectWriter {
	if s == "" {
		return w
	}
	return w.String(key, s)
}

// Append writes any value through json.Marshal, for lists and nested reports.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	data, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal %q: %w", key, err)
		return w
	}
	return w.member(key, data)
}

// Embed merges the members of another object into this one.
func (w *jsonObjectWriter) Embed(v json.Marshaler) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	data, err := v.MarshalJSON()
	if err != nil {
		w.err = fmt.Errorf("failed to marshal for embedding: %w", err)
		return w
	}
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '{' || data[len(data)-1] != '}' {
		w.err = fmt.Errorf("cannot embed %s: not an object", data)
		return w
	}
	members := bytes.TrimSpace(data[1 : len(data)-1])
	if len(members) == 0 {
		return w
	}
	if w.buf.Len() > 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(members)
	return w
}

// MarshalJSON returns the object built so far, or the first error.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.buf.Len()+2)
	out = append(out, '{')
	out = append(out, w.buf.Bytes()...)
	return append(out, '}'), nil
}
