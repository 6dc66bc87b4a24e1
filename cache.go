package inkwell

import (
	"sync"
	"time"

	"github.com/eringen/inkwell/views"
)

// PostCache is an in-memory cache of the full post list with TTL. Every post
// mutation invalidates it; readers get a consistent snapshot.
type PostCache struct {
	mu      sync.RWMutex
	posts   []views.Post
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

// ensureLoaded returns the cached post list after ensuring it is fresh.
// It tries a read lock first; only takes a write lock when a reload is needed.
func (c *PostCache) ensureLoaded() ([]views.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []views.Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}

// ListPosts returns all posts in insertion order.
func (c *PostCache) ListPosts() ([]views.Post, error) {
	return c.ensureLoaded()
}

// GetBySlug returns a single post by slug from the cache.
func (c *PostCache) GetBySlug(slug string) (views.Post, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return views.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return views.Post{}, ErrNotFound
}
