package logrus

import (
	"encoding/hex"

	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/veilhex"
)

var _ veilhex.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New wraps l with a fixed component field.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "veilhex")}
}

func (l LogrusLogger) Debug(msg string, f veilhex.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f veilhex.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f veilhex.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f veilhex.Fields) { l.with(f).Error(msg) }

func (l LogrusLogger) with(f veilhex.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	lf := make(logrus.Fields, len(f))
	for k, v := range f {
		if b, ok := v.([]byte); ok {
			v = hex.EncodeToString(b)
		}
		lf[k] = v
	}
	return l.E.WithFields(lf)
}
