package cache

import "testing"

func TestNewLRU(t *testing.T) {
	t.Parallel()

	if _, err := NewLRU(0); err == nil {
		t.Fatal("expected error for zero size")
	}

	c, err := NewLRU(2)
	if err != nil {
		t.Fatalf("new lru: %v", err)
	}

	c.Add("a", 1)
	c.Add("b", 2)

	v, ok := c.Get("a")
	if !ok || v.(int) != 1 {
		t.Errorf("expected 1 got %v", v)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be deleted")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("expected empty cache got %d", c.Len())
	}
}
