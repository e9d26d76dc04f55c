package util

import (
	"strings"
	"testing"
)

func TestMemoKeyDeterministicAndPrefixed(t *testing.T) {
	a := MemoKey("memo:ns", []byte("hello"))
	b := MemoKey("memo:ns", []byte("hello"))
	if a != b {
		t.Fatalf("not deterministic: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "memo:ns:") {
		t.Fatalf("missing prefix: %q", a)
	}
	if got := len(a) - len("memo:ns:"); got != 16 {
		t.Fatalf("hash part len %d, want 16", got)
	}
	// sha256("hello") = 2cf24dba5fb0a30e...
	if a != "memo:ns:2cf24dba5fb0a30e" {
		t.Fatalf("unexpected key %q", a)
	}
}

func TestMemoKeyDiffersByPayload(t *testing.T) {
	if MemoKey("p", []byte{0}) == MemoKey("p", []byte{1}) {
		t.Fatalf("distinct payloads share a key")
	}
	if MemoKey("p", nil) != MemoKey("p", []byte{}) {
		t.Fatalf("nil and empty payload should share a key")
	}
}
