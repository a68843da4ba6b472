package inkpost

import (
	"testing"
	"time"
)

func TestCacheListAndGet(t *testing.T) {
	s := setupTestStore(t)
	id, err := s.CreatePost(testPost())
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	c := NewPostCache(s, time.Minute)

	posts, err := c.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("ListPosts count = %d, want 1", len(posts))
	}

	got, err := c.GetPost(id)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Title = %q, want Hello", got.Title)
	}

	if _, err := c.GetPost(id + 1); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	s := setupTestStore(t)
	c := NewPostCache(s, time.Minute)

	if posts, err := c.ListPosts(); err != nil || len(posts) != 0 {
		t.Fatalf("initial ListPosts = %v, %v", posts, err)
	}

	if _, err := s.CreatePost(testPost()); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// Within the TTL the cache still answers from the old snapshot.
	if posts, _ := c.ListPosts(); len(posts) != 0 {
		t.Fatalf("expected stale empty snapshot, got %d posts", len(posts))
	}

	c.Invalidate()
	posts, err := c.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts after invalidate failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("expected reload after invalidate, got %d posts", len(posts))
	}
}

func TestCacheEmptyIsCached(t *testing.T) {
	s := setupTestStore(t)
	c := NewPostCache(s, time.Minute)

	if _, err := c.ListPosts(); err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}

	c.mu.RLock()
	loaded := c.posts != nil
	c.mu.RUnlock()
	if !loaded {
		t.Error("an empty store should still mark the cache as loaded")
	}
}
