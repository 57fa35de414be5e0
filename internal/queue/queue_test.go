package queue

import "testing"

func TestQueue_PopOrder(t *testing.T) {
	t.Parallel()

	q := New()
	q.Upsert(1, 0.5)
	q.Upsert(2, 0.9)
	q.Upsert(3, 0.9) // ties with 2, resolves to lower key
	q.Upsert(4, 0.1)

	want := []int64{2, 3, 1, 4}
	for _, k := range want {
		task, ok := q.Pop()
		if !ok {
			t.Fatalf("expected task for key %d, queue empty", k)
		}
		if task.Key != k {
			t.Fatalf("Pop order: got key %d, want %d", task.Key, k)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("queue should be empty")
	}
}

func TestQueue_UpsertUpdatesExisting(t *testing.T) {
	t.Parallel()

	q := New()
	q.Upsert(1, 0.1)
	q.Upsert(2, 0.9)
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}

	// Re-priority key 1 above key 2.
	q.Upsert(1, 0.95)
	if q.Len() != 2 {
		t.Fatalf("Len() after update = %d, want 2 (no duplicate insert)", q.Len())
	}
	task, _ := q.Peek()
	if task.Key != 1 {
		t.Fatalf("Peek() = %d, want 1 after re-priority", task.Key)
	}
}

func TestQueue_RemoveAndContains(t *testing.T) {
	t.Parallel()

	q := New()
	q.Upsert(1, 0.5)
	q.Upsert(2, 0.4)

	if !q.Contains(1) {
		t.Fatal("expected Contains(1) == true")
	}
	q.Remove(1)
	if q.Contains(1) {
		t.Fatal("expected Contains(1) == false after Remove")
	}
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}

	// Removing an absent key is a no-op.
	q.Remove(999)
	if q.Len() != 1 {
		t.Fatalf("Len() after no-op Remove = %d, want 1", q.Len())
	}
}

func TestQueue_TrimToLowestPriority(t *testing.T) {
	t.Parallel()

	q := New()
	q.Upsert(1, 0.9)
	q.Upsert(2, 0.8)
	q.Upsert(3, 0.1)
	q.Upsert(4, 0.05)

	q.TrimToLowestPriority(2)
	if q.Len() != 2 {
		t.Fatalf("Len() after trim = %d, want 2", q.Len())
	}
	if q.Contains(3) || q.Contains(4) {
		t.Fatal("trim should have dropped the lowest-priority tasks (3, 4)")
	}
	if !q.Contains(1) || !q.Contains(2) {
		t.Fatal("trim should have kept the highest-priority tasks (1, 2)")
	}
}

func TestQueue_ResetClears(t *testing.T) {
	t.Parallel()

	q := New()
	q.Upsert(1, 1)
	q.Upsert(2, 2)
	q.Reset()
	if q.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", q.Len())
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("queue should be empty after Reset")
	}
}

func TestQueue_KeysSnapshot(t *testing.T) {
	t.Parallel()

	q := New()
	q.Upsert(1, 1)
	q.Upsert(2, 2)
	q.Upsert(3, 3)

	keys := q.Keys()
	if len(keys) != 3 {
		t.Fatalf("Keys() len = %d, want 3", len(keys))
	}
	seen := map[int64]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	for _, k := range []int64{1, 2, 3} {
		if !seen[k] {
			t.Fatalf("Keys() missing %d", k)
		}
	}
}
