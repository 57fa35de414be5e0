// Package predictor defines the access-pattern prediction contract the
// cache consumes, plus a couple of reference implementations.
//
// A Predictor is assumed pure (no internal state mutation visible across
// calls that would change its output for the same inputs) and cheap
// relative to a provider load; the cache calls it synchronously on every
// Get. Any adaptation over time belongs in the predictor implementation
// itself, not in the cache.
package predictor

// Key identifies a cacheable item, matching cache.Key and policy.Key.
type Key = int64

// Predictor estimates, for the current position and recent history, which
// keys are most likely to be requested next. Scores are non-negative and
// need not be normalized; only their relative ordering matters to the
// cache.
type Predictor interface {
	Likelihoods(current Key, history []Key) map[Key]float64
}

// Nop always returns an empty prediction set. It is useful for demand-paging
// configurations and as the cache's fallback when a real predictor panics
// or otherwise fails (spec §7: predictor failure degrades to "no
// predictions", never to a cache error).
type Nop struct{}

// Likelihoods implements Predictor.
func (Nop) Likelihoods(Key, []Key) map[Key]float64 { return map[Key]float64{} }
