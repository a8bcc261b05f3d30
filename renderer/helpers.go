package renderer

import (
	"bytes"
	"io"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns nil, the content is copied to w, otherwise it is discarded
// and the error returned.
func ConditionalBlock(w io.Writer, block func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := block(&buf); err != nil {
		return err
	}
	_, err := io.Copy(w, &buf)
	return err
}
