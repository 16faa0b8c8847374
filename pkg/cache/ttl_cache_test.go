package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSetExpiry(t *testing.T) {
	c := New[string, int](50*time.Millisecond, time.Hour)
	defer c.Close()

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	time.Sleep(80 * time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok, "expired entries are never returned")
	assert.Equal(t, 1, c.Len(), "the sweep has not run yet")

	c.evictExpired()
	assert.Equal(t, 0, c.Len())
}

func TestFetchCreatesOnceAndSlides(t *testing.T) {
	c := New[string, *int](time.Hour, time.Hour)
	defer c.Close()

	calls := 0
	create := func() *int {
		calls++
		n := calls
		return &n
	}

	first := c.Fetch("ip", create)
	second := c.Fetch("ip", create)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	c.Delete("ip")
	third := c.Fetch("ip", create)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, calls)
}

func TestCloseTwice(t *testing.T) {
	c := New[string, int](time.Second, time.Second)
	c.Close()
	c.Close()
}
