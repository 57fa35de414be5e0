package cache

import (
	"context"
	"time"

	"github.com/go-prefetch/prefetchcache/internal/queue"
	"github.com/go-prefetch/prefetchcache/policy"
)

// runWorker is the single background prefetch execution context (spec
// §4.4). It owns no state besides what Cache already guards with mu: the
// worker is just another lock holder that blocks on cond instead of
// returning to a caller.
//
// States, in terms of this loop: Idle is the Wait() call; Loading(k) and
// Inserting(k) are processTask's two phases; Stopping/Terminated are the
// closed check and the return.
func (c *Cache[V]) runWorker() {
	defer c.wg.Done()

	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		for !c.closed && c.queue.Len() == 0 {
			c.cond.Wait()
		}
		if c.closed {
			return
		}

		task, ok := c.queue.Pop()
		if !ok {
			continue
		}
		if _, cached := c.store[task.Key]; cached {
			// Raced with a synchronous Get that already loaded this key.
			continue
		}
		if c.inflight.In(task.Key) {
			// A synchronous Get is already loading this exact key; its
			// loadAndInsert will insert the result, so there is nothing
			// left for this task to do.
			continue
		}

		c.mu.Unlock()
		c.processTask(task)
		c.mu.Lock()
	}
}

// processTask runs one prefetch task end to end: provider load (off the
// lock), then insert under the store lock with plain (non-likelihood)
// eviction. Errors are swallowed here; they never reach a Get caller.
func (c *Cache[V]) processTask(task queue.Task) {
	ctx := context.Background()
	start := time.Now()

	v, err := c.inflight.Do(ctx, task.Key, func() (V, error) {
		c.mu.Lock()
		if e, ok := c.store[task.Key]; ok {
			c.mu.Unlock()
			return e.value, nil
		}
		c.mu.Unlock()
		return c.provider.Load(ctx, task.Key)
	})
	if err != nil {
		c.prefetchErrors.Add(1)
		c.metrics.PrefetchError()
		c.emit(EventPrefetchError, map[string]any{"key": task.Key, "error": err.Error()})
		return
	}

	c.mu.Lock()
	if _, cached := c.store[task.Key]; !cached && !c.closed {
		c.insertLocked(task.Key, v, policy.Likelihoods(nil))
	}
	cacheKeys, queueDepth := len(c.store), c.queue.Len()
	c.mu.Unlock()

	c.metrics.Size(cacheKeys, queueDepth)
	c.emit(EventPrefetchSuccess, map[string]any{
		"key": task.Key, "duration_ms": time.Since(start).Milliseconds(),
	})
}
