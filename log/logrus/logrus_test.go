package logrus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/unkn0wn-root/veilhex"
)

func TestLogrusLoggerForwardsFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := New(base)

	l.Error("entry failed", veilhex.Fields{"key": "k", "stage": "unknown_to_hex", "payload": []byte{0xd8}})

	e := hook.LastEntry()
	if e == nil {
		t.Fatalf("no entry logged")
	}
	if e.Level != logrus.ErrorLevel || e.Message != "entry failed" {
		t.Fatalf("unexpected entry: %v %q", e.Level, e.Message)
	}
	if e.Data["stage"] != "unknown_to_hex" || e.Data["component"] != "veilhex" || e.Data["payload"] != "d8" {
		t.Fatalf("unexpected data: %v", e.Data)
	}
}

func TestLogrusLevelFiltering(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base)

	l.Debug("hidden", nil)
	l.Info("shown", nil)

	if len(hook.AllEntries()) != 1 || hook.LastEntry().Message != "shown" {
		t.Fatalf("unexpected entries: %v", hook.AllEntries())
	}
}
