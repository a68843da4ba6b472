package inkpost

import (
	"sync"
	"time"
)

// PostCache is an in-memory cache of the post collection with TTL. Read
// handlers (home, post, feed, sitemap) go through it; every write handler
// calls Invalidate after committing.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return err
	}
	if posts == nil {
		// Distinguish "loaded, empty" from "never loaded".
		posts = []BlogPost{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.posts, nil
}

// ListPosts returns all posts in insertion order.
func (c *PostCache) ListPosts() ([]BlogPost, error) {
	return c.ensureLoaded()
}

// GetPost returns a single post by id from the cache, or ErrNotFound.
func (c *PostCache) GetPost(id int64) (BlogPost, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}
