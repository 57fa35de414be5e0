// Package queue implements the bounded prefetch priority queue the
// scheduler reconciles on every Get and the worker drains.
//
// The queue is a max-heap on (priority, key): higher priority pops first;
// equal-priority ties resolve to the lower key, so ordering within one
// reconciliation is fully deterministic (spec.md §3, §4.3).
package queue

import "container/heap"

// Task is one speculative prefetch candidate.
type Task struct {
	Priority float64
	Key      int64
}

// Queue is a bounded, key-addressable priority queue of prefetch Tasks.
// It is not safe for concurrent use; callers serialize access with their
// own lock (the cache's coarse store lock).
type Queue struct {
	h taskHeap
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{h: taskHeap{items: nil, idx: make(map[int64]int)}}
}

// Len reports the number of queued tasks.
func (q *Queue) Len() int { return q.h.Len() }

// Contains reports whether key currently has a queued task.
func (q *Queue) Contains(key int64) bool {
	_, ok := q.h.idx[key]
	return ok
}

// Keys returns a snapshot of queued keys in no particular order.
func (q *Queue) Keys() []int64 {
	keys := make([]int64, 0, len(q.h.items))
	for _, t := range q.h.items {
		keys = append(keys, t.Key)
	}
	return keys
}

// Peek returns the highest-priority task without removing it.
func (q *Queue) Peek() (Task, bool) {
	if q.h.Len() == 0 {
		return Task{}, false
	}
	return *q.h.items[0], true
}

// Pop removes and returns the highest-priority task.
func (q *Queue) Pop() (Task, bool) {
	if q.h.Len() == 0 {
		return Task{}, false
	}
	t := heap.Pop(&q.h).(*Task)
	return *t, true
}

// Upsert inserts a new task for key, or updates the priority of an
// existing one, re-heapifying either way.
func (q *Queue) Upsert(key int64, priority float64) {
	if i, ok := q.h.idx[key]; ok {
		q.h.items[i].Priority = priority
		heap.Fix(&q.h, i)
		return
	}
	heap.Push(&q.h, &Task{Priority: priority, Key: key})
}

// Remove drops the task for key, if present.
func (q *Queue) Remove(key int64) {
	i, ok := q.h.idx[key]
	if !ok {
		return
	}
	heap.Remove(&q.h, i)
}

// Reset clears the queue entirely.
func (q *Queue) Reset() {
	q.h.items = nil
	q.h.idx = make(map[int64]int)
}

// TrimToLowestPriority discards tasks beyond maxSize, keeping the
// highest-priority ones (spec.md §4.3 step 3).
func (q *Queue) TrimToLowestPriority(maxSize int) {
	for q.h.Len() > maxSize {
		// Remove the single lowest-priority task. A linear scan is fine:
		// reconciliation already bounds this to at most max_keys_prefetched
		// extra items per call.
		worst := 0
		for i := 1; i < len(q.h.items); i++ {
			if less(q.h.items[i], q.h.items[worst]) {
				worst = i
			}
		}
		heap.Remove(&q.h, worst)
	}
}

// less orders by ascending priority (used by TrimToLowestPriority to find
// the single worst task), ties broken by descending key so the lowest key
// survives a trim — the mirror image of the heap's own pop order.
func less(a, b *Task) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.Key > b.Key
}

// taskHeap implements container/heap.Interface as a max-heap on
// (Priority desc, Key asc), with an index for O(log n) Fix/Remove by key.
type taskHeap struct {
	items []*Task
	idx   map[int64]int
}

func (h *taskHeap) Len() int { return len(h.items) }

func (h *taskHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Key < b.Key
}

func (h *taskHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.idx[h.items[i].Key] = i
	h.idx[h.items[j].Key] = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*Task)
	h.idx[t.Key] = len(h.items)
	h.items = append(h.items, t)
}

func (h *taskHeap) Pop() any {
	old := h.items
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	delete(h.idx, t.Key)
	return t
}
