// Package veilhex implements a reversible, non-cryptographic veiling scheme for
// binary payloads exchanged as hex text. The scheme is public and unkeyed; it
// obfuscates, it does not encrypt.
//
// Encoded form:
//
//	Header (32 hex chars) | veil(hi(b0),0) veil(lo(b0),0) | veil(hi(b1),1) ... (4 hex chars per byte)
//
// where veil(n, i) = (n XOR 0xD8 + i) mod 256 for a nibble n at source position i.
//
// Operations:
//   - Encode / EncodeHex: payload -> encoded string.
//   - Decode / DecodeHex: encoded string -> payload. Fails with ErrHeaderMismatch,
//     ErrMalformedHex or ErrLengthMismatch.
//   - Validate / ValidateHex: re-derives the encoding of a payload and compares it
//     against an encoded string without going through Decode.
//
// All operations are pure and safe for concurrent use.
package veilhex
