package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/medscan/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	t.Run("stores and retrieves a value", func(t *testing.T) {
		if err := cache.Set(ctx, "key-1", "value-1", time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := cache.Get(ctx, "key-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "value-1" {
			t.Errorf("Get() = %v, want value-1", got)
		}
	})

	t.Run("values are stored without copying", func(t *testing.T) {
		type bucket struct{ hits int }
		original := &bucket{}

		if err := cache.Set(ctx, "key-2", original, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := cache.Get(ctx, "key-2")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.(*bucket) != original {
			t.Error("expected the same live object back")
		}
	})

	t.Run("expired entries miss", func(t *testing.T) {
		if err := cache.Set(ctx, "key-3", "short-lived", time.Millisecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)

		if _, err := cache.Get(ctx, "key-3"); err != domain.ErrCacheMiss {
			t.Errorf("Get() after expiry error = %v, want ErrCacheMiss", err)
		}
	})
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache()

	_, err := cache.Get(context.Background(), "non-existent-key")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_GetOrSet(t *testing.T) {
	ctx := context.Background()

	t.Run("stores when absent", func(t *testing.T) {
		cache := NewMemoryCache()

		got, err := cache.GetOrSet(ctx, "key", "first", time.Minute)
		if err != nil {
			t.Fatalf("GetOrSet() error = %v", err)
		}
		if got != "first" {
			t.Errorf("GetOrSet() = %v, want first", got)
		}
	})

	t.Run("returns the existing value when present", func(t *testing.T) {
		cache := NewMemoryCache()

		if _, err := cache.GetOrSet(ctx, "key", "first", time.Minute); err != nil {
			t.Fatalf("GetOrSet() error = %v", err)
		}
		got, err := cache.GetOrSet(ctx, "key", "second", time.Minute)
		if err != nil {
			t.Fatalf("GetOrSet() error = %v", err)
		}
		if got != "first" {
			t.Errorf("GetOrSet() = %v, want first", got)
		}
	})

	t.Run("replaces an expired value", func(t *testing.T) {
		cache := NewMemoryCache()

		if _, err := cache.GetOrSet(ctx, "key", "first", time.Millisecond); err != nil {
			t.Fatalf("GetOrSet() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)

		got, err := cache.GetOrSet(ctx, "key", "second", time.Minute)
		if err != nil {
			t.Fatalf("GetOrSet() error = %v", err)
		}
		if got != "second" {
			t.Errorf("GetOrSet() = %v, want second", got)
		}
	})

	t.Run("concurrent callers see one stored object", func(t *testing.T) {
		cache := NewMemoryCache()

		const workers = 16
		results := make([]interface{}, workers)
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func(i int) {
				defer wg.Done()
				value := &struct{ id int }{id: i}
				got, err := cache.GetOrSet(ctx, "shared", value, time.Minute)
				if err != nil {
					t.Errorf("GetOrSet() error = %v", err)
					return
				}
				results[i] = got
			}(i)
		}
		wg.Wait()

		for i := 1; i < workers; i++ {
			if results[i] != results[0] {
				t.Fatalf("worker %d got a different object than worker 0", i)
			}
		}
	})
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "delete-test", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := cache.Delete(ctx, "delete-test"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if _, err := cache.Get(ctx, "delete-test"); err != domain.ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "missing")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true for missing key")
	}

	if err := cache.Set(ctx, "present", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	exists, err = cache.Exists(ctx, "present")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false for present key")
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := cache.Set(ctx, key, key, time.Minute); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if got := cache.Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}

	cache.Clear()

	if got := cache.Size(); got != 0 {
		t.Errorf("Size() after Clear() = %d, want 0", got)
	}
}
