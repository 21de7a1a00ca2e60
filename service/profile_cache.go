package service

import (
	"sync"

	"github.com/ludo-technologies/plagscan/internal/analyzer"
)

// ProfileCache stores prepared corpus entries by ID. Entries are immutable,
// so a profile never goes stale once computed.
type ProfileCache struct {
	mu       sync.RWMutex
	profiles map[int64]*analyzer.Profile
}

// NewProfileCache creates an empty cache
func NewProfileCache() *ProfileCache {
	return &ProfileCache{
		profiles: make(map[int64]*analyzer.Profile),
	}
}

// Get returns the cached profile for an entry
func (c *ProfileCache) Get(id int64) (*analyzer.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[id]
	return p, ok
}

// Put stores a profile. The first profile stored for an ID wins.
func (c *ProfileCache) Put(id int64, p *analyzer.Profile) *analyzer.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.profiles[id]; ok {
		return existing
	}
	c.profiles[id] = p
	return p
}

// Len returns the number of cached profiles
func (c *ProfileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}
