// Package policy implements the cache's pluggable eviction strategies.
//
// A Policy never touches the cache store directly: it is handed a
// snapshot of the store's bookkeeping (insertion time and size per key)
// plus the likelihood map computed for the current access, and returns
// the key it would remove. The cache store performs the actual removal.
package policy

// Key identifies a cacheable item. It mirrors the cache package's own Key
// type; both are aliases for the same underlying type so values convert
// for free in either direction.
type Key = int64

// Sizer lets a value report its own size estimate for size-based eviction.
// Values that don't implement Sizer are treated as size 0 by Largest and
// Smallest, which then fall back to the lowest-key tie-break.
type Sizer interface {
	Size() int
}

// Entry is the bookkeeping a Policy needs about one resident key. It
// deliberately excludes the value itself — policies decide on metadata,
// not payloads.
type Entry struct {
	InsertedAt int64 // wall-clock Unix nanoseconds, as recorded by the store; not monotonic
	Size       int   // non-negative size estimate, 0 if value isn't a Sizer
}

// Likelihoods maps a key to the predictor's non-negative access score for
// it. A key absent from the map is treated as score 0.
type Likelihoods map[Key]float64

// Policy picks an eviction victim from a non-empty set of candidates.
//
// PickVictim must not be called with an empty contents map; callers are
// required to check len(contents) > 0 first (spec §4.2's "empty cache" edge case).
type Policy interface {
	PickVictim(contents map[Key]Entry, likelihoods Likelihoods) Key
}
