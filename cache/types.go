package cache

import "errors"

// Key identifies a cacheable artifact. It is a plain signed integer:
// ordering and distance are meaningful to predictors but opaque to the
// cache itself.
type Key = int64

var (
	// ErrClosed is returned by Get when called after Close.
	ErrClosed = errors.New("cache: closed")

	// ErrInvalidOption is returned by New when Options fails validation.
	ErrInvalidOption = errors.New("cache: invalid option")
)

// Event names passed to an Options.OnEvent callback. Every event carries
// at least a "key" field; timing events also carry "duration_ms".
const (
	EventCacheLoadStart    = "cache_load_start"
	EventCacheLoadComplete = "cache_load_complete"
	EventCacheEvict        = "cache_evict"
	EventPrefetchEnqueued  = "prefetch_enqueued"
	EventPrefetchSuccess   = "prefetch_success"
	EventPrefetchError     = "prefetch_error"
)

// EventFunc receives a lifecycle event name and its associated fields. It
// is invoked synchronously on whichever goroutine triggered the event —
// the Get caller's for load, prefetch_enqueued and miss-path evict events,
// the worker's for prefetch_success, prefetch_error and evictions caused
// by a prefetch insertion — so it must not call back into the Cache that
// invokes it, or it will deadlock on the store lock.
type EventFunc func(event string, fields map[string]any)

// Stats is a point-in-time snapshot of cache counters and gauges. No
// atomicity is guaranteed across fields.
type Stats struct {
	Hits                int64
	Misses              int64
	Evictions           int64
	PrefetchErrors      int64
	CacheKeys           int
	ActivePrefetchTasks int
}

// entry is one resident cache record.
type entry[V any] struct {
	value      V
	insertedAt int64
	size       int
}
