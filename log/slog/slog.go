//go:build go1.21

package slog

import (
	"context"
	"encoding/hex"
	stdslog "log/slog"
	"sort"

	"github.com/unkn0wn-root/veilhex"
)

var _ veilhex.Logger = Logger{}

type Logger struct{ L *stdslog.Logger }

func (s Logger) Debug(msg string, f veilhex.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelDebug, msg, attrs(f)...)
}
func (s Logger) Info(msg string, f veilhex.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelInfo, msg, attrs(f)...)
}
func (s Logger) Warn(msg string, f veilhex.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelWarn, msg, attrs(f)...)
}
func (s Logger) Error(msg string, f veilhex.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelError, msg, attrs(f)...)
}

// attrs emits fields in key order so text output is stable. Raw payload
// bytes are written as lowercase hex.
func attrs(f veilhex.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]stdslog.Attr, 0, len(f))
	for _, k := range keys {
		if b, ok := f[k].([]byte); ok {
			out = append(out, stdslog.String(k, hex.EncodeToString(b)))
			continue
		}
		out = append(out, stdslog.Any(k, f[k]))
	}
	return out
}
