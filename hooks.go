package veilhex

// Hooks are lightweight callbacks for high-signal batch events.
// Implementations MUST be cheap and non-blocking; wrap slow sinks with
// hooks/async.
type Hooks interface {
	// A dataset entry failed one conversion stage.
	// stage ∈ {"hex_to_ascii", "hex_to_unknown", "unknown_to_hex"}
	// conversion_pair and round_trip are validations; a false result is
	// recorded on the entry and not reported here.
	EntryFailed(key, stage string, err error)

	// A memoised encoding did not validate against its payload and was dropped.
	// reason ∈ {"length", "invalid"}
	MemoSelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	MemoSetRejected(storageKey string)

	// Provider Get/Set/Del returned an error. The entry proceeds without the memo.
	MemoError(storageKey string, err error)

	// A batch run finished.
	BatchDone(total, failed int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) EntryFailed(string, string, error) {}
func (NopHooks) MemoSelfHeal(string, string)       {}
func (NopHooks) MemoSetRejected(string)            {}
func (NopHooks) MemoError(string, error)           {}
func (NopHooks) BatchDone(int, int)                {}
