package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDisk_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	d := NewLocalDisk(t.TempDir(), "/storage/")

	require.NoError(t, d.Put(ctx, "products/mug.svg", []byte("<svg/>")))

	ok, err := d.Exists(ctx, "products/mug.svg")
	require.NoError(t, err)
	assert.True(t, ok)

	b, err := d.Get(ctx, "products/mug.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(b))

	require.NoError(t, d.Delete(ctx, "products/mug.svg"))
	require.NoError(t, d.Delete(ctx, "products/mug.svg"))

	_, err = d.Get(ctx, "products/mug.svg")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalDisk_StaysInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := NewLocalDisk(root, "/storage")

	require.NoError(t, d.Put(ctx, "../../escape.txt", []byte("x")))

	ok, err := d.Exists(ctx, "escape.txt")
	require.NoError(t, err)
	assert.True(t, ok, "traversal is clamped to the root")
}

func TestURL(t *testing.T) {
	Register("local", NewLocalDisk(t.TempDir(), "/storage"))
	SetDefault("local")

	assert.Equal(t, "/storage/products/mug.svg", URL("products/mug.svg"))
	assert.Equal(t, "https://cdn.example/mug.png", URL("https://cdn.example/mug.png"))
	assert.Equal(t, "", URL(""))
}
