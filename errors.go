package veilhex

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHex   = errors.New("veilhex: malformed hex")
	ErrHeaderMismatch = errors.New("veilhex: header mismatch")
	ErrLengthMismatch = errors.New("veilhex: length mismatch")
)

// CodecError reports which operation failed and where.
// Offset is the index into the operation's text input, or -1 when not applicable.
type CodecError struct {
	Op     string
	Offset int
	Err    error
}

func (e *CodecError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }
