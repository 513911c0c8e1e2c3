package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{Kind: "memory", Prefix: "notify"})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Get(ctx, "k")
	assert.True(t, IsNotFound(err))

	buf := []byte("v1")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'X' // stored value is a copy

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("")
	require.NoError(t, c.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, err := c.Get(ctx, "short")
	assert.True(t, IsNotFound(err))
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(Config{Kind: "memcached"})
	require.Error(t, err)
}
