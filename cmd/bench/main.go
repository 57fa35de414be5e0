// Command bench runs a synthetic playback workload against the cache and
// exposes a Prometheus /metrics endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-prefetch/prefetchcache/cache"
	pmet "github.com/go-prefetch/prefetchcache/metrics/prom"
	"github.com/go-prefetch/prefetchcache/policy"
	"github.com/go-prefetch/prefetchcache/predictor"
	"github.com/go-prefetch/prefetchcache/provider"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ---- Flags ----
	var (
		maxCached     = flag.Int("cached", 200, "max resident keys")
		maxPrefetched = flag.Int("prefetched", 16, "max queued prefetch tasks")
		evictPolicy   = flag.String("policy", "oldest", "eviction policy: oldest | largest | smallest")

		readers  = flag.Int("readers", 2*runtime.GOMAXPROCS(0), "number of concurrent reader goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		keyspace = flag.Int("keys", 50_000, "provider keyspace size")
		jumpPct  = flag.Int("jump_pct", 5, "percentage chance of a random position jump per step")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	m := pmet.New(nil, "prefetchcache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	data := make(map[provider.Key]string, *keyspace)
	for i := 0; i < *keyspace; i++ {
		data[int64(i)] = fmt.Sprintf("frame-%d", i)
	}
	prov := provider.NewInMemoryProvider(data)
	pred := predictor.NewDynamicDataPredictor(nil, predictor.Length(*keyspace))

	var evp policy.Policy
	switch *evictPolicy {
	case "oldest":
		evp = policy.Oldest{}
	case "largest":
		evp = policy.Largest{}
	case "smallest":
		evp = policy.Smallest{}
	default:
		log.Fatalf("unknown policy: %q (use oldest, largest or smallest)", *evictPolicy)
	}

	c, err := cache.New[string](cache.Options[string]{
		Provider:          prov,
		Predictor:         pred,
		MaxKeysCached:     *maxCached,
		MaxKeysPrefetched: *maxPrefetched,
		EvictionPolicy:    evp,
		Metrics:           m,
	})
	if err != nil {
		log.Fatalf("cache.New: %v", err)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for r := 0; r < *readers; r++ {
		r := r
		g.Go(func() error {
			rnd := rand.New(rand.NewSource(*seed + int64(r)*9973))
			pos := int64(rnd.Intn(*keyspace))
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				if rnd.Intn(100) < *jumpPct {
					pos = int64(rnd.Intn(*keyspace))
				} else {
					pos = (pos + 1) % int64(*keyspace)
				}
				if _, err := c.Get(gctx, pos); err != nil {
					return err
				}
			}
		})
	}
	if err := g.Wait(); err != nil && err != context.DeadlineExceeded {
		log.Fatalf("workload error: %v", err)
	}
	elapsed := time.Since(start)

	stats := c.Stats()
	total := stats.Hits + stats.Misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(stats.Hits) / float64(total) * 100
	}
	fmt.Printf("policy=%s cached=%d prefetched=%d readers=%d keys=%d dur=%v seed=%d\n",
		*evictPolicy, *maxCached, *maxPrefetched, *readers, *keyspace, elapsed, *seed)
	fmt.Printf("gets=%d (%.0f ops/s)  hits=%d  misses=%d  hit-rate=%.2f%%\n",
		total, float64(total)/elapsed.Seconds(), stats.Hits, stats.Misses, hitRate)
	fmt.Printf("cache_keys=%d  active_prefetch_tasks=%d  evictions=%d  prefetch_errors=%d\n",
		stats.CacheKeys, stats.ActivePrefetchTasks, stats.Evictions, stats.PrefetchErrors)
}
