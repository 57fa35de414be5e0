package cache

import (
	"sort"

	"github.com/go-prefetch/prefetchcache/policy"
)

// reconcile brings the prefetch queue in line with freshly computed
// likelihoods for the current access (spec §4.3). It never blocks on
// the worker: it only mutates the queue under the store lock and wakes
// the worker if there is now work for it.
func (c *Cache[V]) reconcile(current Key, likelihoods policy.Likelihoods) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	candidates := make(map[Key]float64, len(likelihoods))
	for k, score := range likelihoods {
		if k == current {
			continue
		}
		if _, cached := c.store[k]; cached {
			continue
		}
		candidates[k] = score
	}

	jump := !c.hasPrev || absInt64(current-c.prevCurrent) > c.maxIncrementalJump
	c.prevCurrent, c.hasPrev = current, true

	if c.maxKeysPrefetched == 0 {
		c.queue.Reset()
		return
	}

	if jump {
		c.rebuildQueueLocked(candidates)
	} else {
		c.incrementalSyncLocked(candidates)
	}

	c.queue.TrimToLowestPriority(c.maxKeysPrefetched)
	c.cond.Signal()
}

// rebuildQueueLocked drops the queue entirely and repopulates it from
// the top-scoring candidates (full rebuild: spec §4.3, position jump).
func (c *Cache[V]) rebuildQueueLocked(candidates map[Key]float64) {
	c.queue.Reset()
	for _, sk := range topScored(candidates, c.maxKeysPrefetched) {
		c.queue.Upsert(sk.key, sk.score)
		c.emit(EventPrefetchEnqueued, map[string]any{"key": sk.key})
	}
}

// incrementalSyncLocked keeps queued tasks whose key is still a
// candidate (refreshing their priority), drops the rest, and fills any
// remaining room with the highest-scoring new candidates (spec §4.3,
// incremental sync).
func (c *Cache[V]) incrementalSyncLocked(candidates map[Key]float64) {
	for _, k := range c.queue.Keys() {
		score, ok := candidates[k]
		if !ok {
			c.queue.Remove(k)
			continue
		}
		c.queue.Upsert(k, score)
	}

	room := c.maxKeysPrefetched - c.queue.Len()
	if room <= 0 {
		return
	}

	fresh := make(map[Key]float64, len(candidates))
	for k, score := range candidates {
		if c.queue.Contains(k) {
			continue
		}
		fresh[k] = score
	}
	for _, sk := range topScored(fresh, room) {
		c.queue.Upsert(sk.key, sk.score)
		c.emit(EventPrefetchEnqueued, map[string]any{"key": sk.key})
	}
}

type scoredKey struct {
	key   Key
	score float64
}

// topScored returns up to n highest-scoring entries of m, ties broken by
// ascending key for deterministic ordering within one reconciliation.
func topScored(m map[Key]float64, n int) []scoredKey {
	if n <= 0 {
		return nil
	}
	all := make([]scoredKey, 0, len(m))
	for k, score := range m {
		all = append(all, scoredKey{key: k, score: score})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].key < all[j].key
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
