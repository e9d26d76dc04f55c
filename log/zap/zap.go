package zap

import (
	"encoding/hex"
	"sort"

	"github.com/unkn0wn-root/veilhex"
	"go.uber.org/zap"
)

var _ veilhex.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names l "veilhex".
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("veilhex")} }

func (z ZapLogger) Debug(msg string, f veilhex.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f veilhex.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f veilhex.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f veilhex.Fields) { z.L.Error(msg, zf(f)...) }

// zf converts fields in key order. Errors keep their structure; raw payload
// bytes are written as lowercase hex rather than zap's base64.
func zf(f veilhex.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		switch v := f[k].(type) {
		case error:
			out = append(out, zap.NamedError(k, v))
		case []byte:
			out = append(out, zap.String(k, hex.EncodeToString(v)))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
