package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_HandleAllocation(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first := store.NewHandle()
	second := store.NewHandle()

	assert.NotEqual(t, first, second)
	assert.Equal(t, store.root, filepath.Dir(first))
	// A fresh handle points at nothing until Write runs.
	assert.False(t, store.Exists(context.Background(), first))
}

func TestLocalStore_WriteReadRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	handle := store.NewHandle()
	require.NoError(t, store.Write(context.Background(), handle, strings.NewReader("hello world")))
	assert.True(t, store.Exists(context.Background(), handle))

	rc, err := store.Open(context.Background(), handle)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestLocalStore_WriteOverwrites(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	handle := store.NewHandle()
	require.NoError(t, store.Write(context.Background(), handle, strings.NewReader("first version, longer")))
	require.NoError(t, store.Write(context.Background(), handle, strings.NewReader("second")))

	rc, err := store.Open(context.Background(), handle)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), store.NewHandle())
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestLocalStore_WriteRecreatesRemovedRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(root))

	handle := store.NewHandle()
	require.NoError(t, store.Write(context.Background(), handle, strings.NewReader("x")))
	assert.True(t, store.Exists(context.Background(), handle))
}

func TestLocalStore_ExistsIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	dir := filepath.Join(root, "subdir")
	require.NoError(t, os.Mkdir(dir, 0750))

	assert.False(t, store.Exists(context.Background(), dir))
}
