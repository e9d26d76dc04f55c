package codec

import "github.com/unkn0wn-root/veilhex"

// Veiled runs Inner and then veils its bytes: the output is veilhex text
// (Header followed by four hex chars per inner byte). Decode requires the
// header and rejects malformed text with the veilhex sentinel errors.
type Veiled[V any] struct {
	Inner Codec[V]
}

func (c Veiled[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return []byte(veilhex.Encode(b)), nil
}

func (c Veiled[V]) Decode(b []byte) (V, error) {
	raw, err := veilhex.Decode(string(b))
	if err != nil {
		var zero V
		return zero, err
	}
	return c.Inner.Decode(raw)
}
