package embedding

import (
	"container/list"
	"sync"
)

// vectorCache is an LRU cache of encoded vectors keyed by text. Candidate
// documents repeat across queries, so a warm cache avoids re-running the
// model for an unchanged corpus.
type vectorCache struct {
	capacity int
	mu       sync.Mutex
	entries  map[string]*list.Element
	lru      *list.List
}

type cacheEntry struct {
	key    string
	vector []float32
}

func newVectorCache(capacity int) *vectorCache {
	if capacity <= 0 {
		capacity = 1024
	}
	return &vectorCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}

func (c *vectorCache) get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*cacheEntry).vector, true
}

func (c *vectorCache) set(key string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).vector = vector
		return
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, vector: vector})
	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *vectorCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
