package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := NewCache(2, 0)

	_, ok := c.Get("geometry", "int add(int x);")
	assert.False(t, ok)

	c.Add("geometry", "int add(int x);", "rendered")
	out, ok := c.Get("geometry", "int add(int x);")
	assert.True(t, ok)
	assert.Equal(t, "rendered", out)

	_, ok = c.Get("other", "int add(int x);")
	assert.False(t, ok, "module name is part of the key")

	assert.Equal(t, int64(1), c.Hits())
	assert.Equal(t, int64(2), c.Misses())
	assert.Equal(t, 1, c.Len())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2, 0)
	c.Add("a", "1", "A")
	c.Add("b", "2", "B")
	c.Add("c", "3", "C")

	_, ok := c.Get("a", "1")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCacheExpires(t *testing.T) {
	c := NewCache(4, 20*time.Millisecond)
	c.Add("a", "1", "A")

	assert.Eventually(t, func() bool {
		_, ok := c.Get("a", "1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNewCacheMinimumSize(t *testing.T) {
	c := NewCache(0, 0)
	c.Add("a", "1", "A")
	assert.Equal(t, 1, c.Len())
}
