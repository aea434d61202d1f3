package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(size int, ttl time.Duration) (*LRUCache[string], *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](size, ttl)
	c.now = clk.now
	return c, clk
}

func TestLRUCache_GetSet(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", "1")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	c.Set("a", "2")
	v, _ = c.Get("a")
	assert.Equal(t, "2", v)
	assert.Equal(t, 1, c.Size())
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a")
	c.Set("c", "3")

	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Size())
}

func TestLRUCache_TTL(t *testing.T) {
	c, clk := newTestCache(4, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	clk.t = clk.t.Add(2 * time.Minute)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 0, c.Size())
}

func TestLRUCache_ZeroSizeStoresNothing(t *testing.T) {
	c, _ := newTestCache(0, time.Minute)
	c.Set("a", "1")
	assert.Equal(t, 0, c.Size())
}

func TestLRUCache_PurgeInvalidatesInFlightValues(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)
	c.Set("a", "1")

	gen := c.Generation()
	c.Purge()
	assert.Equal(t, 0, c.Size())
	assert.False(t, c.SetIfGeneration(gen, "dash", "stale"))
	_, ok := c.Get("dash")
	assert.False(t, ok)

	assert.True(t, c.SetIfGeneration(c.Generation(), "dash", "fresh"))
}

func TestMemo(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)
	calls := 0
	compute := func() (string, error) {
		calls++
		return "view", nil
	}

	v, err := Memo(c, "k", compute)
	require.NoError(t, err)
	assert.Equal(t, "view", v)
	_, _ = Memo(c, "k", compute)
	assert.Equal(t, 1, calls)

	c.Purge()
	_, _ = Memo(c, "k", compute)
	assert.Equal(t, 2, calls)

	boom := errors.New("boom")
	_, err = Memo(c, "err", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get("err")
	assert.False(t, ok)
}

func TestMemo_ComputeAcrossPurgeIsNotStored(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)
	v, err := Memo(c, "k", func() (string, error) {
		c.Purge()
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", v)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestManager_CleanNow(t *testing.T) {
	a, clk := newTestCache(4, time.Minute)
	b, _ := newTestCache(4, time.Hour)
	b.now = clk.now
	a.Set("x", "1")
	b.Set("y", "2")

	m := NewManager(nil)
	m.Register(a)
	m.Register(b)

	clk.t = clk.t.Add(10 * time.Minute)
	assert.Equal(t, 1, m.CleanNow())

	m.StartCleanup(time.Millisecond)
	m.Stop()
}
