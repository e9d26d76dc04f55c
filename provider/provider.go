// Package provider defines the store backing the batch encode memo.
//
// A memo maps a payload digest to the veilhex encoding of that payload.
// Stores MUST hand back exactly the string they were given for a key. The
// memo re-validates every hit against its payload anyway and deletes values
// that do not match, so a lossy store degrades to recomputation rather than
// wrong output.
//
// The keyspace "memo:<ns>:" is owned by the batch processor.
package provider

import (
	"context"
	"time"
)

// Provider is a string store with TTLs. Must be safe for concurrent use.
type Provider interface {
	// Get returns (encoded, true, nil) on hit; ("", false, nil) on miss.
	// If an IO/remote error happens, return ("", false, err).
	Get(ctx context.Context, key string) (encoded string, ok bool, err error)

	// Set stores encoded for ttl (<= 0 means the store's own lifetime).
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key, encoded string, ttl time.Duration) (ok bool, err error)

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	Close(ctx context.Context) error
}
