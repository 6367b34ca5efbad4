package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](4)

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get on empty cache returned ok")
	}

	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}

	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) after update = %d; want 2", v)
	}
}

func TestCache_Eviction(t *testing.T) {
	c := New[int, int](2)

	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1) // 1 is now most recently used
	c.Set(3, 3)

	if _, ok := c.Get(2); ok {
		t.Error("expected 2 to be evicted as least recently used")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("expected 1 to survive eviction")
	}
	if _, ok := c.Get(3); !ok {
		t.Error("expected 3 to be present")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestCache_GetOrCompute(t *testing.T) {
	c := New[string, int](4)

	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	if v := c.GetOrCompute("k", compute); v != 42 {
		t.Errorf("GetOrCompute = %d; want 42", v)
	}
	if v := c.GetOrCompute("k", compute); v != 42 {
		t.Errorf("GetOrCompute = %d; want 42", v)
	}
	if calls != 1 {
		t.Errorf("compute called %d times; want 1", calls)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[int, string](4)
	c.Set(1, "one")
	c.Set(2, "two")

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d; want 0", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Error("Get(1) after Clear returned ok")
	}
}

func TestCache_Stats(t *testing.T) {
	c := New[string, int](2)

	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 1 {
		t.Errorf("Hits = %d; want 1", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses = %d; want 1", s.Misses)
	}
	if s.HitRate != 0.5 {
		t.Errorf("HitRate = %f; want 0.5", s.HitRate)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[string, int](64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := strconv.Itoa(j % 100)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d; want <= capacity 64", c.Len())
	}
}
