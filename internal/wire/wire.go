package wire

import "errors"

// XORKey is mixed into every nibble before the position offset is added.
const XORKey byte = 0xD8

var ErrOddLength = errors.New("veilhex: odd encoded byte count")

// veil maps one nibble at source position i to a full encoded byte.
// Position arithmetic wraps modulo 256.
func veil(nibble byte, i int) byte {
	return (nibble ^ XORKey) + byte(i)
}

// unveil is the inverse of veil for the same position.
func unveil(b byte, i int) byte {
	return ((b - byte(i)) ^ XORKey) & 0x0F
}

// Pair returns the two encoded bytes for source byte b at position i:
// high nibble first, then low nibble.
func Pair(b byte, i int) (hi, lo byte) {
	return veil(b>>4, i), veil(b&0x0F, i)
}

// Encode expands payload into two encoded bytes per source byte.
//
//	payload: b0 b1 ... bN-1
//	encoded: veil(b0>>4,0) veil(b0&15,0) veil(b1>>4,1) veil(b1&15,1) ...
func Encode(payload []byte) []byte {
	return AppendEncode(make([]byte, 0, 2*len(payload)), payload)
}

// AppendEncode appends the encoded form of payload to dst.
func AppendEncode(dst, payload []byte) []byte {
	for i, b := range payload {
		hi, lo := Pair(b, i)
		dst = append(dst, hi, lo)
	}
	return dst
}

// Decode collapses encoded pairs back into source bytes.
// len(data) must be even; each pair maps to exactly one output byte.
func Decode(data []byte) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, ErrOddLength
	}
	out := make([]byte, len(data)/2)
	for i := range out {
		hi := unveil(data[2*i], i)
		lo := unveil(data[2*i+1], i)
		out[i] = hi<<4 | lo
	}
	return out, nil
}
