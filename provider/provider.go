// Package provider defines the data-loading contract the cache consumes,
// plus reference implementations. Concrete providers are explicitly out of
// scope for the cache core (spec.md §1, §6): the cache only ever depends
// on the Provider[V] interface below.
package provider

import (
	"context"
	"errors"
)

// Key identifies a cacheable item, matching cache.Key and policy.Key.
type Key = int64

// ErrKeyNotFound is returned by a Provider when asked to load a key it
// does not have. The cache does not pre-validate against AvailableKeys;
// this error simply propagates to the caller on a synchronous Get, or
// increments prefetch_errors on a background prefetch (spec.md §7).
var ErrKeyNotFound = errors.New("provider: key not found")

// Provider loads values for keys and enumerates what's available. Load is
// assumed blocking and potentially slow; the cache never calls Load for a
// key it already holds, and never calls it twice concurrently for the
// same key (spec.md §3 invariants).
type Provider[V any] interface {
	// Load blocks until the value for key is available or loading fails.
	Load(ctx context.Context, key Key) (V, error)
	// AvailableKeys returns a finite snapshot of loadable keys.
	AvailableKeys() []Key
	// TotalKeys reports the size of the provider's backing dataset.
	TotalKeys() int
	// Stats returns optional diagnostic information; may be nil.
	Stats() map[string]any
}
