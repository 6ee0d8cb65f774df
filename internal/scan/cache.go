package scan

import (
	"sync"

	"github.com/BrunoKrugel/c2pafinder/internal/model"
)

// ResultCache holds a ring buffer of the most recent results
type ResultCache struct {
	results    []*model.ImageResult
	writeIndex int
	count      int
	size       int
	mu         sync.RWMutex
}

func NewResultCache(size int) *ResultCache {
	if size < 1 {
		size = 1
	}
	return &ResultCache{
		results: make([]*model.ImageResult, size),
		size:    size,
	}
}

// Add stores a copy of r, evicting the oldest entry when full
func (c *ResultCache) Add(r model.ImageResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results[c.writeIndex] = &r
	c.writeIndex = (c.writeIndex + 1) % c.size
	if c.count < c.size {
		c.count++
	}
}

// Lookup returns the newest successful result cached for url
func (c *ResultCache) Lookup(url string) (model.ImageResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := 1; i <= c.count; i++ {
		r := c.results[(c.writeIndex-i+c.size)%c.size]
		if r.URL == url && !r.Failed() {
			return *r, true
		}
	}
	return model.ImageResult{}, false
}

// Recent returns cached results, newest first
func (c *ResultCache) Recent() []model.ImageResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.ImageResult, 0, c.count)
	for i := 1; i <= c.count; i++ {
		out = append(out, *c.results[(c.writeIndex-i+c.size)%c.size])
	}
	return out
}
