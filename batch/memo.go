package batch

import (
	"context"
	"time"

	"github.com/unkn0wn-root/veilhex"
	"github.com/unkn0wn-root/veilhex/internal/util"
	pr "github.com/unkn0wn-root/veilhex/provider"
)

// memo caches encodings by payload hash. Every hit is re-validated against
// the payload, so hash collisions and foreign or corrupt values fall back to
// a fresh encode and are deleted from the store.
type memo struct {
	p      pr.Provider
	prefix string
	ttl    time.Duration
	log    veilhex.Logger
	hooks  veilhex.Hooks

	hits, misses int
}

func (m *memo) encode(ctx context.Context, payload []byte) string {
	if m == nil {
		return veilhex.Encode(payload)
	}
	k := util.MemoKey(m.prefix, payload)

	stored, ok, err := m.p.Get(ctx, k)
	switch {
	case err != nil:
		m.log.Warn("memo get failed", veilhex.Fields{"key": k, "err": err})
		m.hooks.MemoError(k, err)
	case ok:
		if veilhex.Validate(payload, stored) {
			m.hits++
			return stored
		}
		reason := "invalid"
		if len(stored) != veilhex.EncodedLen(len(payload)) {
			reason = "length"
		}
		if err := m.p.Del(ctx, k); err != nil {
			m.hooks.MemoError(k, err)
		}
		m.log.Debug("memo entry dropped", veilhex.Fields{"key": k, "reason": reason, "payload": payload[:min(len(payload), 8)]})
		m.hooks.MemoSelfHeal(k, reason)
	}

	m.misses++
	enc := veilhex.Encode(payload)
	kept, err := m.p.Set(ctx, k, enc, m.ttl)
	switch {
	case err != nil:
		m.log.Warn("memo set failed", veilhex.Fields{"key": k, "err": err})
		m.hooks.MemoError(k, err)
	case !kept:
		m.log.Debug("memo set rejected by provider (pressure)", veilhex.Fields{"key": k})
		m.hooks.MemoSetRejected(k)
	}
	return enc
}
