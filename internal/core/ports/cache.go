package ports

// Cache defines the in-process read cache contract used by repositories and services.
// A miss is a normal outcome, not an error. Implementations must be safe for concurrent use.
type Cache[K comparable, V any] interface {
	// Get returns the live value for key. ok=false if unknown or expired.
	Get(key K) (V, bool)
	// GetOrCompute returns the cached value or calls compute on a miss and stores its result.
	// An error from compute is returned unchanged and nothing is stored.
	GetOrCompute(key K, compute func() (V, error)) (V, error)
	// Put inserts or replaces the value for key with a fresh TTL.
	Put(key K, value V)
	// Update replaces the value only if key is already present.
	Update(key K, value V)
	// Remove deletes key; absence is not an error.
	Remove(key K)
	// Clear deletes all entries.
	Clear()
}
