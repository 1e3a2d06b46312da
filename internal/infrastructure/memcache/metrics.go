package memcache

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memcache_requests_total",
			Help: "Cache lookups by cache name and result (hit or miss)",
		},
		[]string{"cache", "result"},
	)

	cacheRemovals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memcache_removals_total",
			Help: "Entries dropped by the cache itself, by cache name and reason (evicted or expired)",
		},
		[]string{"cache", "reason"},
	)
)

func init() {
	prometheus.MustRegister(cacheRequests)
	prometheus.MustRegister(cacheRemovals)
}

func (c *Cache[K, V]) recordHit()  { cacheRequests.WithLabelValues(c.name, "hit").Inc() }
func (c *Cache[K, V]) recordMiss() { cacheRequests.WithLabelValues(c.name, "miss").Inc() }

func (c *Cache[K, V]) recordEviction() {
	cacheRemovals.WithLabelValues(c.name, "evicted").Inc()
}

func (c *Cache[K, V]) recordExpirations(n int) {
	if n > 0 {
		cacheRemovals.WithLabelValues(c.name, "expired").Add(float64(n))
	}
}
