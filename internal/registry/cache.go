package registry

import (
	"container/list"
	"context"
	"sync"

	"codeberg.org/snonux/phonobridge/internal/model"
)

// DefaultCacheCapacity bounds the number of live artifacts when no capacity
// is configured
const DefaultCacheCapacity = 4

// cacheEntry represents one artifact slot. done is closed once the load
// finishes; waiters block on it rather than on a lock, so cache hits never
// serialize behind a load.
type cacheEntry struct {
	key       Key
	done      chan struct{}
	predictor model.Predictor
	err       error
}

// artifactCache is an LRU-bounded cache of loaded artifacts keyed by
// (language, direction, config hash). A miss coalesces concurrent loads:
// at most one load runs per key, and every waiter receives the same
// instance once it is ready.
type artifactCache struct {
	capacity int

	mu      sync.Mutex
	entries map[Key]*list.Element
	lru     *list.List
}

func newArtifactCache(capacity int) *artifactCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &artifactCache{
		capacity: capacity,
		entries:  make(map[Key]*list.Element),
		lru:      list.New(),
	}
}

// getOrLoad returns the cached artifact for key, loading it at most once
// across concurrent callers. A caller whose ctx is cancelled returns early;
// the load itself continues for the remaining waiters.
func (c *artifactCache) getOrLoad(ctx context.Context, key Key, load func() (model.Predictor, error)) (model.Predictor, error) {
	c.mu.Lock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		c.mu.Unlock()
		return c.wait(ctx, entry)
	}

	entry := &cacheEntry{key: key, done: make(chan struct{})}
	c.entries[key] = c.lru.PushFront(entry)
	c.evictLocked()
	c.mu.Unlock()

	// The load runs detached: cancellation of this caller must not abort
	// the load other waiters are coalesced onto.
	go func() {
		predictor, err := load()

		entry.predictor = predictor
		entry.err = err
		close(entry.done)

		if err != nil {
			// failed loads do not stay cached; the next request retries
			c.remove(key, entry)
		}
	}()

	return c.wait(ctx, entry)
}

// wait blocks until the entry's load completes or ctx is cancelled
func (c *artifactCache) wait(ctx context.Context, entry *cacheEntry) (model.Predictor, error) {
	select {
	case <-entry.done:
		return entry.predictor, entry.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// evictLocked drops least-recently-used completed entries until the cache
// fits its capacity. Entries still loading are skipped so their waiters are
// not orphaned mid-load.
func (c *artifactCache) evictLocked() {
	for c.lru.Len() > c.capacity {
		evicted := false
		for elem := c.lru.Back(); elem != nil; elem = elem.Prev() {
			entry := elem.Value.(*cacheEntry)
			select {
			case <-entry.done:
				c.lru.Remove(elem)
				delete(c.entries, entry.key)
				evicted = true
			default:
				continue
			}
			break
		}
		if !evicted {
			return
		}
	}
}

// remove drops an entry if it still occupies its slot
func (c *artifactCache) remove(key Key, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok && elem.Value.(*cacheEntry) == entry {
		c.lru.Remove(elem)
		delete(c.entries, key)
	}
}

// len returns the number of cached entries, loads in flight included
func (c *artifactCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
