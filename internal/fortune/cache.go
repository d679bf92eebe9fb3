package fortune

import (
	"sync"
	"time"

	"lucklens/internal/domain"
)

// ContentCache is a single-slot, time-boxed holder for the last successfully
// generated content. It never fabricates or extends data: an expired slot
// simply reads as absent, and refetching is the caller's job. Last write wins
// on overlapping requests.
type ContentCache struct {
	mu        sync.Mutex
	data      *domain.GeneratedContent
	timestamp time.Time
	ttl       time.Duration

	now func() time.Time
}

func NewContentCache(ttl time.Duration) *ContentCache {
	return &ContentCache{ttl: ttl, now: time.Now}
}

func (c *ContentCache) Get() (*domain.GeneratedContent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		return nil, false
	}
	if c.now().Sub(c.timestamp) >= c.ttl {
		return nil, false
	}
	return c.data, true
}

func (c *ContentCache) Set(content *domain.GeneratedContent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = content
	c.timestamp = c.now()
}

func (c *ContentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.timestamp = time.Time{}
}
