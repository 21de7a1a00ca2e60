package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// EmbeddingCache stores vectors keyed by a digest of the embedded text.
// It is safe for concurrent use; once full, the oldest entry is evicted.
type EmbeddingCache struct {
	mu       sync.RWMutex
	capacity int
	vectors  map[string][]float32
	order    []string
}

// NewEmbeddingCache creates a cache holding at most capacity vectors.
// A capacity of zero or less disables caching.
func NewEmbeddingCache(capacity int) *EmbeddingCache {
	return &EmbeddingCache{
		capacity: capacity,
		vectors:  make(map[string][]float32),
	}
}

// Get retrieves a cached vector. Returns (vector, true) on hit.
func (c *EmbeddingCache) Get(text string) ([]float32, bool) {
	if c == nil || c.capacity <= 0 {
		return nil, false
	}
	key := cacheKey(text)

	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vectors[key]
	return v, ok
}

// Put stores a vector for a text
func (c *EmbeddingCache) Put(text string, vector []float32) {
	if c == nil || c.capacity <= 0 {
		return
	}
	key := cacheKey(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.vectors[key]; exists {
		c.vectors[key] = vector
		return
	}
	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.vectors, oldest)
	}
	c.vectors[key] = vector
	c.order = append(c.order, key)
}

// Len returns the number of entries in the cache
func (c *EmbeddingCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
