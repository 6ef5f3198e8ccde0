package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing.nnsb")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "batches/a.nnsb", []byte("first")))
	require.NoError(t, store.Put(ctx, "batches/b.nnsb", []byte("second")))
	require.NoError(t, store.Put(ctx, "results/a.json", []byte("{}")))

	data, err := store.Get(ctx, "batches/a.nnsb")
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// Overwrite.
	require.NoError(t, store.Put(ctx, "batches/a.nnsb", []byte("third")))
	data, err = store.Get(ctx, "batches/a.nnsb")
	require.NoError(t, err)
	assert.Equal(t, "third", string(data))

	names, err := store.List(ctx, "batches/")
	require.NoError(t, err)
	assert.Equal(t, []string{"batches/a.nnsb", "batches/b.nnsb"}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, names, 3)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_Copies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	src := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", src))
	src[0] = 'z'

	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_AtomicPutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "data.nnsb", []byte("hello")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.nnsb", entries[0].Name())

	content, err := os.ReadFile(filepath.Join(dir, "data.nnsb"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestLocalStore_RejectsEscapingNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Put(ctx, "../outside", []byte("x")))
	_, err := store.Get(ctx, "/etc/passwd")
	assert.Error(t, err)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "absent"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "x", nil), context.Canceled)
	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
