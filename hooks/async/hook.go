// Package asynchook runs another veilhex.Hooks on a bounded worker pool so
// slow sinks never stall the batch loop. Events are dropped when the queue is
// full.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{EntryFailedEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/veilhex"
)

type Hooks struct {
	inner   veilhex.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

var _ veilhex.Hooks = (*Hooks)(nil)

func New(inner veilhex.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded because the queue was full
// or the hooks were closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	defer func() {
		// send on closed channel after Close
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) EntryFailed(k, s string, err error) { h.try(func() { h.inner.EntryFailed(k, s, err) }) }
func (h *Hooks) MemoSelfHeal(k, r string)           { h.try(func() { h.inner.MemoSelfHeal(k, r) }) }
func (h *Hooks) MemoSetRejected(k string)           { h.try(func() { h.inner.MemoSetRejected(k) }) }
func (h *Hooks) MemoError(k string, err error)      { h.try(func() { h.inner.MemoError(k, err) }) }
func (h *Hooks) BatchDone(total, failed int)        { h.try(func() { h.inner.BatchDone(total, failed) }) }
