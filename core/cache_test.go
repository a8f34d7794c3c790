package core

import (
	"fmt"
	"testing"
	"time"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{TTL: time.Minute, MaxSize: 10})
	user := &User{ID: "user-1", Username: "alice"}

	if err := cache.Set(user.ID, user); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(user.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Get() = %q, want %q", got.ID, user.ID)
	}
}

func TestInMemoryCache_Miss(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{TTL: time.Minute, MaxSize: 10})

	if _, err := cache.Get("absent"); err != ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, ErrCacheMiss)
	}
}

func TestInMemoryCache_Expiry(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{TTL: time.Millisecond, MaxSize: 10})
	cache.Set("user-1", &User{ID: "user-1"})

	time.Sleep(5 * time.Millisecond)

	if _, err := cache.Get("user-1"); err != ErrCacheMiss {
		t.Errorf("Get() after TTL error = %v, want %v", err, ErrCacheMiss)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() after expiry = %d, want 0", cache.Len())
	}
}

func TestInMemoryCache_Eviction(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{TTL: time.Minute, MaxSize: 3})

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("user-%d", i)
		cache.Set(id, &User{ID: id})
	}

	if cache.Len() > 3 {
		t.Errorf("Len() = %d, want at most 3", cache.Len())
	}
}

func TestInMemoryCache_DeleteAndClear(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{TTL: time.Minute, MaxSize: 10})
	cache.Set("user-1", &User{ID: "user-1"})
	cache.Set("user-2", &User{ID: "user-2"})

	if err := cache.Delete("user-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := cache.Get("user-1"); err != ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want %v", err, ErrCacheMiss)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() after clear = %d, want 0", cache.Len())
	}
}

func TestInMemoryCache_Defaults(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{})

	if cache.ttl != 5*time.Minute {
		t.Errorf("default TTL = %v, want %v", cache.ttl, 5*time.Minute)
	}
	if cache.maxSize != 500 {
		t.Errorf("default MaxSize = %d, want 500", cache.maxSize)
	}
}
