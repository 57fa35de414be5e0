package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-prefetch/prefetchcache/internal/queue"
	"github.com/go-prefetch/prefetchcache/internal/singleflight"
	"github.com/go-prefetch/prefetchcache/internal/util"
	"github.com/go-prefetch/prefetchcache/metrics"
	"github.com/go-prefetch/prefetchcache/policy"
	"github.com/go-prefetch/prefetchcache/predictor"
	"github.com/go-prefetch/prefetchcache/provider"
)

// Cache is a bounded, thread-safe prefetching cache. All exported methods
// are safe for concurrent use by multiple goroutines.
//
// A single background worker owns the prefetch queue: Get mutates the
// queue (cheaply, under the store lock) and signals the worker; the
// worker drains it by calling the provider off the lock and inserting
// results back into the store under the same eviction discipline used by
// synchronous misses.
type Cache[V any] struct {
	provider  provider.Provider[V]
	predictor predictor.Predictor

	maxKeysCached      int
	maxKeysPrefetched  int
	historySize        int
	maxIncrementalJump int64

	evictionPolicy policy.Policy
	sizeFunc       func(V) int
	metrics        metrics.Metrics
	onEvent        EventFunc

	// ---- guarded by mu ----
	mu          sync.Mutex
	cond        *sync.Cond
	store       map[Key]entry[V]
	history     []Key
	queue       *queue.Queue
	prevCurrent Key
	hasPrev     bool
	closed      bool

	// inflight coalesces provider loads across the synchronous miss path
	// and the background worker, so a key is never loaded twice at once.
	inflight singleflight.Group[Key, V]

	wg sync.WaitGroup

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_              util.CacheLinePad
	hits           util.PaddedAtomicInt64
	misses         util.PaddedAtomicInt64
	evictions      util.PaddedAtomicInt64
	prefetchErrors util.PaddedAtomicInt64
}

// New constructs a Cache from opt, applying defaults documented on
// Options, and starts its background prefetch worker. The returned error
// is non-nil only for misconfiguration (a nil Provider/Predictor or a
// negative bound); this is rejected at construction, never at Get time.
func New[V any](opt Options[V]) (*Cache[V], error) {
	if err := opt.setDefaultsAndValidate(); err != nil {
		return nil, err
	}

	c := &Cache[V]{
		provider:           opt.Provider,
		predictor:          opt.Predictor,
		maxKeysCached:      opt.MaxKeysCached,
		maxKeysPrefetched:  opt.MaxKeysPrefetched,
		historySize:        opt.HistorySize,
		maxIncrementalJump: opt.MaxIncrementalJump,
		evictionPolicy:     &policy.LikelihoodAware{Base: opt.EvictionPolicy},
		sizeFunc:           opt.Size,
		metrics:            opt.Metrics,
		onEvent:            opt.OnEvent,
		store:              make(map[Key]entry[V], opt.MaxKeysCached),
		queue:              queue.New(),
	}
	c.cond = sync.NewCond(&c.mu)

	c.wg.Add(1)
	go c.runWorker()

	return c, nil
}

// Get returns the value for key, loading it from the Provider on a miss.
// It never invokes the Provider on a hit. Each call also recomputes the
// Predictor's likelihoods once and uses them both for eviction (on a
// miss) and to reconcile the prefetch queue, per the spec's
// once-per-call evaluation (§9: cyclic dependency between eviction and
// scheduler).
func (c *Cache[V]) Get(ctx context.Context, key Key) (V, error) {
	var zero V

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	history := c.appendHistoryLocked(key)
	e, hit := c.store[key]
	if hit {
		c.hits.Add(1)
	}
	c.mu.Unlock()

	likelihoods := c.safeLikelihoods(key, history)

	if hit {
		c.metrics.Hit()
		c.emit(EventCacheLoadComplete, map[string]any{"key": key, "hit": true})
		c.reconcile(key, likelihoods)
		return e.value, nil
	}

	c.misses.Add(1)
	c.metrics.Miss()
	c.emit(EventCacheLoadStart, map[string]any{"key": key})

	start := time.Now()
	v, err := c.loadAndInsert(ctx, key, likelihoods)
	if err != nil {
		return zero, err
	}
	c.emit(EventCacheLoadComplete, map[string]any{
		"key": key, "hit": false, "duration_ms": time.Since(start).Milliseconds(),
	})

	c.reconcile(key, likelihoods)
	return v, nil
}

// Stats returns a snapshot of cache counters and gauges.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	cacheKeys := len(c.store)
	activePrefetch := c.queue.Len()
	c.mu.Unlock()

	return Stats{
		Hits:                c.hits.Load(),
		Misses:              c.misses.Load(),
		Evictions:           c.evictions.Load(),
		PrefetchErrors:      c.prefetchErrors.Load(),
		CacheKeys:           cacheKeys,
		ActivePrefetchTasks: activePrefetch,
	}
}

// Close stops the background worker and waits for it to finish its
// current task, if any. Tasks still queued are abandoned; the worker's
// in-flight Provider load is allowed to finish but its result is discarded.
// Close is idempotent. Get called after Close returns ErrClosed.
func (c *Cache[V]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cond.Broadcast()
	c.wg.Wait()
	return nil
}

// loadAndInsert loads key via the Provider (coalesced with any
// concurrent loader for the same key) and inserts the result, evicting
// under likelihoods if the cache is now over capacity.
func (c *Cache[V]) loadAndInsert(ctx context.Context, key Key, likelihoods policy.Likelihoods) (V, error) {
	return c.inflight.Do(ctx, key, func() (V, error) {
		c.mu.Lock()
		if e, ok := c.store[key]; ok {
			c.mu.Unlock()
			return e.value, nil
		}
		c.mu.Unlock()

		v, err := c.provider.Load(ctx, key)
		if err != nil {
			var zero V
			return zero, err
		}

		c.mu.Lock()
		c.insertLocked(key, v, likelihoods)
		cacheKeys, queueDepth := len(c.store), c.queue.Len()
		c.mu.Unlock()
		c.metrics.Size(cacheKeys, queueDepth)

		return v, nil
	})
}

// insertLocked stores key/value and evicts one entry if the store is now
// over capacity. Callers must hold mu. likelihoods may be nil, in which
// case every candidate is treated as equally (un)likely and the
// likelihood-aware wrapper falls through to its base policy's tie-break —
// this is how background-worker insertions evict (spec §4.4 step 4 does
// not recompute likelihoods for a prefetch insertion).
func (c *Cache[V]) insertLocked(key Key, value V, likelihoods policy.Likelihoods) {
	c.store[key] = entry[V]{value: value, insertedAt: time.Now().UnixNano(), size: c.sizeOf(value)}
	// A key present in the store is never enqueued for prefetch.
	c.queue.Remove(key)

	if len(c.store) <= c.maxKeysCached {
		return
	}

	victim := c.evictionPolicy.PickVictim(c.snapshotPolicyEntriesLocked(key), likelihoods)
	delete(c.store, victim)
	c.evictions.Add(1)
	c.metrics.Eviction()
	c.emit(EventCacheEvict, map[string]any{"key": victim})
}

// sizeOf estimates value's in-cache footprint: Options.Size if configured,
// else the value's own Size() if it implements policy.Sizer, else 0.
func (c *Cache[V]) sizeOf(value V) int {
	if c.sizeFunc != nil {
		return c.sizeFunc(value)
	}
	if sv, ok := any(value).(policy.Sizer); ok {
		return sv.Size()
	}
	return 0
}

// snapshotPolicyEntriesLocked builds the eviction candidate pool, excluding
// exclude (the key just inserted): it can never be its own eviction victim,
// and leaving it in would otherwise make it the likely winner of
// LikelihoodAware's "least-likely" narrowing, since a key's own predicted
// likelihood at the access that just inserted it is usually 0 (predictors
// score the keys around current, and worker insertions pass no scores).
func (c *Cache[V]) snapshotPolicyEntriesLocked(exclude Key) map[policy.Key]policy.Entry {
	contents := make(map[policy.Key]policy.Entry, len(c.store)-1)
	for k, e := range c.store {
		if k == exclude {
			continue
		}
		contents[k] = policy.Entry{InsertedAt: e.insertedAt, Size: e.size}
	}
	return contents
}

func (c *Cache[V]) appendHistoryLocked(key Key) []Key {
	c.history = append(c.history, key)
	if len(c.history) > c.historySize {
		c.history = c.history[len(c.history)-c.historySize:]
	}
	out := make([]Key, len(c.history))
	copy(out, c.history)
	return out
}

// safeLikelihoods calls the predictor and treats a panic as "no
// predictions" rather than letting it fail the enclosing Get (spec §7).
// The degraded fallback is predictor.Nop, which is guaranteed to never
// itself panic. A negative score violates the predictor contract; such
// entries are dropped and the remaining scores are kept.
func (c *Cache[V]) safeLikelihoods(current Key, history []Key) (out policy.Likelihoods) {
	out = policy.Likelihoods{}
	defer func() {
		if recover() != nil {
			out = policy.Likelihoods(predictor.Nop{}.Likelihoods(current, history))
		}
	}()
	for k, score := range c.predictor.Likelihoods(current, history) {
		if score < 0 {
			continue
		}
		out[k] = score
	}
	return out
}

func (c *Cache[V]) emit(event string, fields map[string]any) {
	if c.onEvent == nil {
		return
	}
	c.onEvent(event, fields)
}
