package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrLoad(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrLoad(c, "tok", "payments", load)
		if err != nil {
			t.Fatal(err)
		}
		if len(v) != 2 {
			t.Fatalf("v = %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}
}

func TestGetOrLoad_ErrorsNotCached(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	load := func() (int, error) {
		calls++
		return 0, errors.New("boom")
	}
	_, _ = GetOrLoad(c, "tok", "users", load)
	_, _ = GetOrLoad(c, "tok", "users", load)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if c.Len() != 0 {
		t.Errorf("len = %d", c.Len())
	}
}

func TestGetOrLoad_NilCache(t *testing.T) {
	v, err := GetOrLoad(nil, "tok", "x", func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Errorf("v = %d, err %v", v, err)
	}
}

func TestTokensAreIsolated(t *testing.T) {
	c := New(time.Minute)
	c.Set("alice", "payments", 1)
	if _, ok := c.Get("bob", "payments"); ok {
		t.Error("bob sees alice's entry")
	}
	if v, ok := c.Get("alice", "payments"); !ok || v != 1 {
		t.Errorf("alice = %v, %v", v, ok)
	}
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)
	c.Set("tok", "vehicles:syrian", 1)
	c.Set("tok", "vehicles:foreign", 2)
	c.Set("tok", "payments", 3)
	c.Set("other", "vehicles:syrian", 4)

	c.Invalidate("tok", "vehicles")

	if _, ok := c.Get("tok", "vehicles:syrian"); ok {
		t.Error("vehicles:syrian survived")
	}
	if _, ok := c.Get("tok", "vehicles:foreign"); ok {
		t.Error("vehicles:foreign survived")
	}
	if _, ok := c.Get("tok", "payments"); !ok {
		t.Error("payments was dropped")
	}
	if _, ok := c.Get("other", "vehicles:syrian"); !ok {
		t.Error("other token was dropped")
	}

	c.Flush()
	if c.Len() != 0 {
		t.Errorf("len after flush = %d", c.Len())
	}
}

func TestExpiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("tok", "k", 1)
	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("tok", "k"); ok {
		t.Error("entry should have expired")
	}
}

func TestDefaultTTL(t *testing.T) {
	if New(0).TTL() != DefaultTTL {
		t.Error("zero ttl should use the default")
	}
}
