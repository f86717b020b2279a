package store

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a small TTL-bound LRU of string values, used for handle -> DID
// lookups that survive between runs in loop mode.
type Cache struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	now   func() time.Time
	ll    *list.List               // most-recent at front
	items map[string]*list.Element // key -> element
}

type entry struct {
	key   string
	value string
	exp   time.Time
}

func NewCache(maxKeys int, ttl time.Duration) *Cache {
	if maxKeys <= 0 {
		maxKeys = 1024
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{cap: maxKeys, ttl: ttl, now: time.Now, ll: list.New(), items: make(map[string]*list.Element)}
}

// Get returns the live value for key, dropping it if expired.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return "", false
	}
	en := el.Value.(entry)
	if !c.now().Before(en.exp) {
		c.ll.Remove(el)
		delete(c.items, key)
		return "", false
	}
	c.ll.MoveToFront(el)
	return en.value, true
}

// Put stores value under key and refreshes its expiry.
func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := c.now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		el.Value = entry{key: key, value: value, exp: exp}
		c.ll.MoveToFront(el)
		return
	}
	c.items[key] = c.ll.PushFront(entry{key: key, value: value, exp: exp})
	for c.ll.Len() > c.cap {
		c.removeOldest()
	}
	// expired entries collect at the tail
	for t := c.ll.Back(); t != nil && !c.now().Before(t.Value.(entry).exp); t = c.ll.Back() {
		c.removeOldest()
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *Cache) removeOldest() {
	t := c.ll.Back()
	if t == nil {
		return
	}
	c.ll.Remove(t)
	delete(c.items, t.Value.(entry).key)
}
