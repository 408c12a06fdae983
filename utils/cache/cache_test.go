package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int
	Name string
}

func rowKey(r row) int { return r.ID }

func TestMirrorKeepsOrder(t *testing.T) {
	m := NewMirror(rowKey)
	assert.False(t, m.Loaded())

	m.Replace([]row{{1, "a"}, {2, "b"}, {3, "c"}})
	assert.True(t, m.Loaded())
	assert.Equal(t, []row{{1, "a"}, {2, "b"}, {3, "c"}}, m.Values())

	m.Set(row{2, "B"})
	assert.Equal(t, []row{{1, "a"}, {2, "B"}, {3, "c"}}, m.Values())

	m.Set(row{4, "d"})
	assert.Equal(t, []row{{4, "d"}, {1, "a"}, {2, "B"}, {3, "c"}}, m.Values())

	assert.True(t, m.Delete(1))
	assert.False(t, m.Delete(1))
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get(4)
	require.True(t, ok)
	assert.Equal(t, "d", v.Name)

	m.Invalidate()
	assert.False(t, m.Loaded())
	assert.Empty(t, m.Values())
}

func TestMirrorValuesIsACopy(t *testing.T) {
	m := NewMirror(rowKey)
	m.Replace([]row{{1, "a"}})

	vals := m.Values()
	vals[0].Name = "changed"
	assert.Equal(t, "a", m.Values()[0].Name)
}

func TestLocalCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLocalCache()
	c.now = func() time.Time { return now }

	n, err := c.Increment(ctx, "attempts")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, _ = c.Increment(ctx, "attempts")
	assert.EqualValues(t, 2, n)

	require.NoError(t, c.Expire(ctx, "attempts", time.Minute))
	ttl, _ := c.TTL(ctx, "attempts")
	assert.Equal(t, time.Minute, ttl)

	require.NoError(t, c.Set(ctx, "lock", "locked", 30*time.Second))
	ok, _ := c.Exists(ctx, "lock")
	assert.True(t, ok)

	now = now.Add(45 * time.Second)
	ok, _ = c.Exists(ctx, "lock")
	assert.False(t, ok)
	v, err := c.Get(ctx, "attempts")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "attempts")
	assert.ErrorIs(t, err, ErrNotFound)
	ttl, _ = c.TTL(ctx, "attempts")
	assert.Equal(t, time.Duration(-2), ttl)
}
