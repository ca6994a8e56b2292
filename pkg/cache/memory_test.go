package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetDel(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", map[string]int{"total": 15}, 0))

	var got map[string]int
	require.True(t, m.Get(ctx, "k", &got))
	assert.Equal(t, 15, got["total"])

	require.NoError(t, m.Del(ctx, "k"))
	assert.False(t, m.Get(ctx, "k", &got))
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(context.Background(), "k", "v", time.Minute))

	var s string
	assert.True(t, m.Get(context.Background(), "k", &s))

	now = now.Add(2 * time.Minute)
	assert.False(t, m.Get(context.Background(), "k", &s))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	in := []int{1, 2}
	require.NoError(t, m.Set(context.Background(), "ids", in, 0))
	in[0] = 99

	var out []int
	require.True(t, m.Get(context.Background(), "ids", &out))
	assert.Equal(t, []int{1, 2}, out)
}

func TestPackageHelpersUseActiveStore(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { Use(prev) })

	Use(NewMemory())
	require.NoError(t, Set("greeting", "hi", 0))

	var s string
	assert.True(t, Get("greeting", &s))
	assert.Equal(t, "hi", s)

	require.NoError(t, Forget("greeting"))
	assert.False(t, Get("greeting", &s))
}
