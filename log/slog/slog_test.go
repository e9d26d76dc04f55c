package slog

import (
	"bytes"
	"errors"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/veilhex"
)

func newBufLogger(level stdslog.Level) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: level})
	return Logger{L: stdslog.New(h)}, &buf
}

func TestFieldsAreSortedAttrs(t *testing.T) {
	l, buf := newBufLogger(stdslog.LevelDebug)
	l.Info("entry processed", veilhex.Fields{"key": "k1", "errors": 0, "attempt": 2, "payload": []byte("He")})

	out := buf.String()
	if !strings.Contains(out, `msg="entry processed"`) {
		t.Fatalf("missing msg: %s", out)
	}
	a, e, k := strings.Index(out, "attempt="), strings.Index(out, "errors="), strings.Index(out, "key=k1")
	if a < 0 || e < 0 || k < 0 || !(a < e && e < k) {
		t.Fatalf("fields not in key order: %s", out)
	}
	if !strings.Contains(out, "payload=4865") {
		t.Fatalf("payload bytes not hex: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufLogger(stdslog.LevelWarn)
	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	l.Warn("shown", veilhex.Fields{"err": errors.New("boom")})
	l.Error("shown too", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug/info leaked: %s", out)
	}
	if strings.Count(out, "shown") != 2 || !strings.Contains(out, "err=boom") {
		t.Fatalf("unexpected output: %s", out)
	}
}
