package codec

import (
	"errors"
	"fmt"
)

var ErrTooLarge = errors.New("codec: artifact too large")

// LimitCodec refuses to Decode inputs longer than MaxDecode bytes before
// handing them to Inner. Encode is forwarded unchanged. MaxDecode <= 0
// disables the check.
type LimitCodec[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
