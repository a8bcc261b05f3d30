package mbank

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/etnz/capgains"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the encoding of eMakler exports.
var DefaultEncoding encoding.Encoding = charmap.Windows1250

// LookupEncoding returns the encoding registered under the IANA name 'name',
// e.g. "windows-1250" or "ISO-8859-2".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported: %w", name, capgains.ErrUnknownValue)
	}
	return enc, nil
}

// decode converts 'data' from 'enc' to UTF-8.
//
// Bytes that have no character in the encoding are reported instead of being
// replaced, with the line they appear on.
func decode(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &capgains.ParseError{Err: fmt.Errorf("decoding: %w", err)}
	}
	text := string(out)
	if i := strings.IndexRune(text, utf8.RuneError); i >= 0 {
		line := strings.Count(text[:i], "\n") + 1
		return "", &capgains.ParseError{Line: line, Err: capgains.ErrUnmappableByte}
	}
	return text, nil
}
