package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// MemoKey returns a deterministic storage key for payload under prefix:
// prefix + ":" + first 16 hex chars of sha256(payload).
func MemoKey(prefix string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return prefix + ":" + hex.EncodeToString(sum[:8])
}
