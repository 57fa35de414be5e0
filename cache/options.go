package cache

import (
	"fmt"

	"github.com/go-prefetch/prefetchcache/metrics"
	"github.com/go-prefetch/prefetchcache/policy"
	"github.com/go-prefetch/prefetchcache/predictor"
	"github.com/go-prefetch/prefetchcache/provider"
)

// Options configures a Cache. Zero values are safe; sane defaults are
// applied in New():
//   - MaxKeysCached == 0      => 200
//   - MaxKeysPrefetched == 0  => prefetching disabled (no default applied)
//   - HistorySize == 0        => 10
//   - MaxIncrementalJump == 0 => 5
//   - any negative bound      => rejected with ErrInvalidOption
//   - nil EvictionPolicy      => policy.Oldest{}
//   - nil Metrics             => metrics.NoopMetrics{}
//   - nil Size                => falls back to policy.Sizer, else size 0
//
// Provider and Predictor have no defaults; New rejects a nil of either.
type Options[V any] struct {
	// Provider loads values on cache miss and on prefetch. Required.
	Provider provider.Provider[V]

	// Predictor turns (current key, history) into candidate-key scores.
	// Required.
	Predictor predictor.Predictor

	// MaxKeysCached bounds the resident entry count.
	MaxKeysCached int

	// MaxKeysPrefetched bounds the prefetch queue depth.
	MaxKeysPrefetched int

	// HistorySize bounds the access-history window passed to Predictor.
	HistorySize int

	// MaxIncrementalJump is the largest |current-prev| distance for which
	// the scheduler reconciles the prefetch queue incrementally rather
	// than rebuilding it from scratch (spec's MAX_INCR_DIST).
	MaxIncrementalJump int64

	// EvictionPolicy is the base victim-selection strategy. It is always
	// wrapped in a likelihood-aware filter before use: the wrapper
	// restricts the candidate pool to the least-likely-to-be-reaccessed
	// keys, then defers to this policy to break ties.
	EvictionPolicy policy.Policy

	// Size estimates the in-cache footprint of a value, for size-based
	// eviction policies. Nil falls back to the value's own Size() if it
	// implements policy.Sizer, else treats it as size 0.
	Size func(V) int

	// Metrics receives Hit/Miss/Eviction/PrefetchError/Size signals.
	Metrics metrics.Metrics

	// OnEvent, if set, is invoked for every lifecycle event (see the
	// Event* constants). See EventFunc for the re-entrancy caveat.
	OnEvent EventFunc
}

func (o *Options[V]) setDefaultsAndValidate() error {
	if o.Provider == nil {
		return fmt.Errorf("%w: Provider is required", ErrInvalidOption)
	}
	if o.Predictor == nil {
		return fmt.Errorf("%w: Predictor is required", ErrInvalidOption)
	}
	if o.MaxKeysCached < 0 {
		return fmt.Errorf("%w: MaxKeysCached must be >= 0", ErrInvalidOption)
	}
	if o.MaxKeysCached == 0 {
		o.MaxKeysCached = 200
	}
	if o.MaxKeysPrefetched < 0 {
		return fmt.Errorf("%w: MaxKeysPrefetched must be >= 0", ErrInvalidOption)
	}
	if o.HistorySize < 0 {
		return fmt.Errorf("%w: HistorySize must be >= 0", ErrInvalidOption)
	}
	if o.HistorySize == 0 {
		o.HistorySize = 10
	}
	if o.MaxIncrementalJump < 0 {
		return fmt.Errorf("%w: MaxIncrementalJump must be >= 0", ErrInvalidOption)
	}
	if o.MaxIncrementalJump == 0 {
		o.MaxIncrementalJump = 5
	}
	if o.EvictionPolicy == nil {
		o.EvictionPolicy = policy.Oldest{}
	}
	if o.Metrics == nil {
		o.Metrics = metrics.NoopMetrics{}
	}
	return nil
}
