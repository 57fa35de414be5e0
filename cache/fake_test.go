package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// fakeProvider is a minimal Provider[string] with per-key errors, per-key
// delays and a per-key call counter (callCount).
type fakeProvider struct {
	mu     sync.Mutex
	values map[Key]string
	errs   map[Key]error
	delays map[Key]time.Duration
	calls  map[Key]*int64
}

func newFakeProvider(values map[Key]string) *fakeProvider {
	return &fakeProvider{
		values: values,
		errs:   map[Key]error{},
		delays: map[Key]time.Duration{},
		calls:  map[Key]*int64{},
	}
}

func (p *fakeProvider) failOn(key Key, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[key] = err
}

// delayOn makes Load block for d before returning, letting tests observe
// state (e.g. a prefetch queue) before the background worker drains it.
func (p *fakeProvider) delayOn(key Key, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delays[key] = d
}

func (p *fakeProvider) callCount(key Key) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.calls[key]
	if !ok {
		return 0
	}
	return atomic.LoadInt64(c)
}

func (p *fakeProvider) Load(_ context.Context, key Key) (string, error) {
	p.mu.Lock()
	counter, ok := p.calls[key]
	if !ok {
		counter = new(int64)
		p.calls[key] = counter
	}
	err, failing := p.errs[key]
	v, present := p.values[key]
	delay := p.delays[key]
	p.mu.Unlock()

	atomic.AddInt64(counter, 1)
	if delay > 0 {
		time.Sleep(delay)
	}
	if failing {
		return "", err
	}
	if !present {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (p *fakeProvider) AvailableKeys() []Key {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]Key, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	return keys
}

func (p *fakeProvider) TotalKeys() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.values)
}

func (p *fakeProvider) Stats() map[string]any { return nil }

// ErrKeyNotFound mirrors provider.ErrKeyNotFound without importing the
// provider package, keeping this test double self-contained.
var ErrKeyNotFound = sentinelErr("fake provider: key not found")

type sentinelErr string

func (e sentinelErr) Error() string { return string(e) }

// constPredictor always returns the same likelihood map regardless of
// current/history, letting tests pin down exactly which keys the
// scheduler and eviction wrapper see.
type constPredictor struct {
	likelihoods map[Key]float64
}

func (p constPredictor) Likelihoods(Key, []Key) map[Key]float64 {
	out := make(map[Key]float64, len(p.likelihoods))
	for k, v := range p.likelihoods {
		out[k] = v
	}
	return out
}

// byPositionPredictor dispatches to a different constant map depending on
// current, used to test the full-rebuild-on-jump scenario.
type byPositionPredictor struct {
	at map[Key]map[Key]float64
}

func (p byPositionPredictor) Likelihoods(current Key, _ []Key) map[Key]float64 {
	out := make(map[Key]float64)
	for k, v := range p.at[current] {
		out[k] = v
	}
	return out
}
