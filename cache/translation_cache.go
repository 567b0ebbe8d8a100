// Package cache memoizes translations for the lifetime of the process.
package cache

import (
	"container/list"
	"sync"
)

const DefaultCapacity = 1000

type key struct {
	text   string
	target string
}

type entry struct {
	key   key
	value string
}

// Stats is a point-in-time snapshot of the cache counters.
type Stats struct {
	Entries   int    `json:"entries"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// TranslationCache is a bounded map from (text, target language) to a translation.
// Once full, the oldest insertion is evicted first. Reads do not refresh an entry.
type TranslationCache struct {
	mu        sync.Mutex
	capacity  int
	order     *list.List
	entries   map[key]*list.Element
	hits      uint64
	misses    uint64
	evictions uint64
}

func NewTranslationCache(capacity int) *TranslationCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &TranslationCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[key]*list.Element, capacity),
	}
}

// GetOrCompute returns the cached translation or calls compute and stores its result.
// compute runs outside the lock: concurrent misses on the same key may both compute,
// the last store wins. Errors are returned as is and never cached.
func (c *TranslationCache) GetOrCompute(text, target string, compute func() (string, error)) (string, error) {
	if value, ok := c.Get(text, target); ok {
		return value, nil
	}
	value, err := compute()
	if err != nil {
		return "", err
	}
	c.Put(text, target, value)
	return value, nil
}

func (c *TranslationCache) Get(text, target string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key{text, target}]; ok {
		c.hits++
		return el.Value.(*entry).value, true
	}
	c.misses++
	return "", false
}

// Put stores a translation. Overwriting a key keeps its original insertion position.
func (c *TranslationCache) Put(text, target, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key{text, target}
	if el, ok := c.entries[k]; ok {
		el.Value.(*entry).value = value
		return
	}
	c.entries[k] = c.order.PushBack(&entry{key: k, value: value})
	for c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
		c.evictions++
	}
}

func (c *TranslationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *TranslationCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:   c.order.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Clear drops every entry and resets the counters.
func (c *TranslationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[key]*list.Element, c.capacity)
	c.hits, c.misses, c.evictions = 0, 0, 0
}
