package io

import (
	"fmt"
	"io"
)

// Tape is a line-oriented Console. Each printed value is written to
// Output as a decimal number followed by a newline.
type Tape struct {
	Output io.Writer

	Lines int // Count of values written.
}

var _ Console = (*Tape)(nil)

// Print writes value to the tape.
func (tc *Tape) Print(value byte) (err error) {
	if tc.Output == nil {
		err = ErrTapeMissing
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.Lines++
	return
}

// Rewind resets the line count.
func (tc *Tape) Rewind() {
	tc.Lines = 0
}
