package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/veilhex"
)

type Options struct {
	// Sampling to avoid floods on large datasets; 0/1 = log all.
	EntryFailedEvery uint64
	SelfHealEvery    uint64
	// Optional key redactor for memo storage keys. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	entryFailedCtr atomic.Uint64
	selfHealCtr    atomic.Uint64
}

var _ veilhex.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntryFailed(key, stage string, err error) {
	if h.l == nil || !sample(h.opts.EntryFailedEvery, &h.entryFailedCtr) {
		return
	}
	h.l.Info("veilhex.entry_failed",
		"entry", key,
		"stage", stage,
		"err", err)
}

func (h *Hooks) MemoSelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("veilhex.memo_self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) MemoSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("veilhex.memo_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) MemoError(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("veilhex.memo_error",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) BatchDone(total, failed int) {
	if h.l == nil {
		return
	}
	h.l.Info("veilhex.batch_done",
		"total", total,
		"failed", failed)
}
