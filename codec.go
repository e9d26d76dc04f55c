package veilhex

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/unkn0wn-root/veilhex/internal/wire"
)

const (
	// Header prefixes every encoded string. Lowercase hex, 16 bytes.
	Header = "d8ab19d5c7a0f27c10fa57540506ac68"

	XORKey = wire.XORKey

	// hex chars emitted per source byte (two encoded bytes)
	charsPerByte = 4

	hextable = "0123456789abcdef"
)

// EncodedLen returns the length in hex characters of the encoding of n bytes.
func EncodedLen(n int) int { return len(Header) + charsPerByte*n }

// Encode veils payload and returns Header followed by the lowercase hex of the
// encoded bytes. It never fails.
func Encode(payload []byte) string {
	var sb strings.Builder
	sb.Grow(EncodedLen(len(payload)))
	sb.WriteString(Header)
	sb.WriteString(hex.EncodeToString(wire.Encode(payload)))
	return sb.String()
}

// EncodeHex is Encode for a payload given as hex text.
// Malformed payload text yields ErrMalformedHex and no output.
func EncodeHex(payloadHex string) (string, error) {
	payload, err := parseHex("encode", payloadHex)
	if err != nil {
		return "", err
	}
	return Encode(payload), nil
}

// ParseHex decodes payload hex text, reporting failures as ErrMalformedHex.
func ParseHex(s string) ([]byte, error) {
	return parseHex("parse", s)
}

func parseHex(op, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, hexError(op, 0, s, err)
	}
	return b, nil
}

// Decode reverses Encode.
//
// The header must match exactly (case included). The data after it must be
// valid hex of even length and carry an even number of encoded bytes.
func Decode(encoded string) ([]byte, error) {
	if !strings.HasPrefix(encoded, Header) {
		return nil, &CodecError{Op: "decode", Offset: 0, Err: ErrHeaderMismatch}
	}
	data := encoded[len(Header):]
	raw, err := hex.DecodeString(data)
	if err != nil {
		return nil, hexError("decode", len(Header), data, err)
	}
	out, err := wire.Decode(raw)
	if err != nil {
		return nil, &CodecError{Op: "decode", Offset: -1, Err: ErrLengthMismatch}
	}
	return out, nil
}

// DecodeHex is Decode returning the payload as lowercase hex text.
func DecodeHex(encoded string) (string, error) {
	p, err := Decode(encoded)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(p), nil
}

// Validate reports whether encoded is exactly the encoding of payload.
// It re-derives each encoded pair from payload and compares the hex text in
// place, lowercase only; Decode is never consulted. Any mismatch (header,
// length, value) is false.
func Validate(payload []byte, encoded string) bool {
	if len(encoded) != EncodedLen(len(payload)) || encoded[:len(Header)] != Header {
		return false
	}
	data := encoded[len(Header):]
	for i, b := range payload {
		hi, lo := wire.Pair(b, i)
		off := i * charsPerByte
		if data[off] != hextable[hi>>4] || data[off+1] != hextable[hi&0x0F] ||
			data[off+2] != hextable[lo>>4] || data[off+3] != hextable[lo&0x0F] {
			return false
		}
	}
	return true
}

// ValidateHex is Validate for a payload given as hex text.
// Malformed payload text is reported as false.
func ValidateHex(payloadHex, encoded string) bool {
	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return false
	}
	return Validate(payload, encoded)
}

// hexError maps an encoding/hex failure on s (found at base within the
// operation input) to ErrMalformedHex with the offending offset.
func hexError(op string, base int, s string, err error) error {
	off := base + len(s)
	var ib hex.InvalidByteError
	if errors.As(err, &ib) {
		if i := strings.IndexByte(s, byte(ib)); i >= 0 {
			off = base + i
		}
	}
	return &CodecError{Op: op, Offset: off, Err: ErrMalformedHex}
}
