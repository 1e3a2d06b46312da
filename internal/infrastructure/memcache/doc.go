// Package memcache provides a bounded, TTL-expiring, in-process LRU cache.
//
// Entries live for a fixed TTL from their last write. Reads and writes both
// promote an entry to most-recently-used, and inserting past the capacity
// evicts the least-recently-used entry on the spot. Expired entries are swept
// at the start of Get, Put and Update; there is no background goroutine.
//
// The cache is an accelerator, never a source of truth: GetOrCompute does not
// deduplicate concurrent misses for the same key, so callers may compute the
// same value more than once and the last Put wins.
package memcache
