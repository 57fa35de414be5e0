// Package prom adapts metrics.Metrics to Prometheus counters and gauges.
package prom

import (
	"github.com/go-prefetch/prefetchcache/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements metrics.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits         prometheus.Counter
	misses       prometheus.Counter
	evictions    prometheus.Counter
	prefetchErrs prometheus.Counter
	sizeKeys     prometheus.Gauge
	sizePrefetch prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "evictions_total",
			Help:        "Cache evictions",
			ConstLabels: constLabels,
		}),
		prefetchErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "prefetch_errors_total",
			Help:        "Prefetch loads that failed",
			ConstLabels: constLabels,
		}),
		sizeKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "cache_keys",
			Help:        "Number of resident keys",
			ConstLabels: constLabels,
		}),
		sizePrefetch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "active_prefetch_tasks",
			Help:        "Current prefetch queue depth",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evictions, a.prefetchErrs, a.sizeKeys, a.sizePrefetch)
	return a
}

// Hit implements metrics.Metrics.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss implements metrics.Metrics.
func (a *Adapter) Miss() { a.misses.Inc() }

// Eviction implements metrics.Metrics.
func (a *Adapter) Eviction() { a.evictions.Inc() }

// PrefetchError implements metrics.Metrics.
func (a *Adapter) PrefetchError() { a.prefetchErrs.Inc() }

// Size implements metrics.Metrics.
func (a *Adapter) Size(cacheKeys, activePrefetchTasks int) {
	a.sizeKeys.Set(float64(cacheKeys))
	a.sizePrefetch.Set(float64(activePrefetchTasks))
}

// Compile-time check: ensure Adapter implements metrics.Metrics.
var _ metrics.Metrics = (*Adapter)(nil)
