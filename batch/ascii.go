package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/unkn0wn-root/veilhex"
)

var (
	ErrNotUTF8 = errors.New("payload is not valid UTF-8")
	ErrNotJSON = errors.New("payload is not valid JSON")
)

// hexToASCII decodes payload hex into text and requires the text to be a
// JSON document.
func hexToASCII(payloadHex string) (string, error) {
	b, err := veilhex.ParseHex(payloadHex)
	if err != nil {
		return "", fmt.Errorf("invalid hex to ASCII conversion: %w", err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("invalid hex to ASCII conversion: %w", ErrNotUTF8)
	}
	if !json.Valid(b) {
		return "", fmt.Errorf("invalid hex to ASCII conversion: %w", ErrNotJSON)
	}
	return string(b), nil
}
