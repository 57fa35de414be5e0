// Package cache implements a dynamic prefetching cache: a bounded store
// keyed by a moving "current position" (e.g. a frame index into a
// time-ordered dataset), backed by a pluggable Provider and steered by a
// pluggable Predictor.
//
// Design
//
//   - Concurrency: a single coarse-grained mutex guards the store map,
//     history, prefetch queue, and the previous-position bookkeeping used
//     to detect position jumps. A condition variable wakes the background
//     worker when the queue becomes non-empty or the cache is closed. The
//     provider is never called while the lock is held.
//
//   - Loading: concurrent Get calls (and the background worker) share a
//     singleflight.Group, so the same key is never loaded from the
//     provider twice at once, whether the two callers are both
//     synchronous misses or one is a prefetch racing a synchronous Get.
//
//   - Eviction: pluggable via the policy package (Oldest, Largest,
//     Smallest). The configured policy is always wrapped in
//     policy.LikelihoodAware, which restricts the victim pool to the
//     least-likely-to-be-reaccessed keys (as scored by Predictor) before
//     deferring to the base policy to break ties.
//
//   - Prefetching: every Get recomputes the Predictor's likelihoods once
//     and reconciles the prefetch queue against them — incrementally near
//     the previous position, or by a full rebuild across a position jump
//     (see scheduler.go). The background worker drains the queue,
//     highest-priority first, loading and inserting candidates under the
//     same eviction discipline as a synchronous miss.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Eviction/PrefetchError/Size
//     signals as they happen. By default metrics.NoopMetrics is used; the
//     metrics/prom subpackage adapts it to Prometheus.
//
//   - Events: Options.OnEvent, if set, receives every lifecycle event
//     synchronously on whichever goroutine triggered it (see EventFunc).
//
// Basic usage
//
//	c, err := cache.New[string](cache.Options[string]{
//	    Provider:  myProvider,
//	    Predictor: myPredictor,
//	})
//	if err != nil {
//	    // misconfiguration, e.g. a nil Provider
//	}
//	defer c.Close()
//
//	v, err := c.Get(context.Background(), 42)
//
// With a size-based eviction policy
//
//	c, _ := cache.New[[]byte](cache.Options[[]byte]{
//	    Provider:       myProvider,
//	    Predictor:      myPredictor,
//	    MaxKeysCached:  500,
//	    EvictionPolicy: policy.Largest{},
//	    Size:           func(v []byte) int { return len(v) },
//	})
//
// Exporting metrics (Prometheus adapter)
//
//	m := prom.New(nil, "myapp", "prefetchcache", nil)
//	c, _ := cache.New[string](cache.Options[string]{
//	    Provider: myProvider, Predictor: myPredictor, Metrics: m,
//	})
//
// Thread-safety
//
// All methods on Cache are safe for concurrent use by multiple
// goroutines.
package cache
