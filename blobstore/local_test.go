package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gwfs "github.com/hupe1980/geoweights/internal/fs"
)

func stores(t *testing.T) map[string]BlobStore {
	return map[string]BlobStore{
		"local":  NewLocalStore(t.TempDir()),
		"memory": NewMemoryStore(),
	}
}

func TestStoreLifecycle(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			data := []byte("0 3 cities id\n1 2 0.5\n")

			w, err := store.Create(ctx, "weights/knn.gwt")
			require.NoError(t, err)
			n, err := w.Write(data)
			require.NoError(t, err)
			require.Equal(t, len(data), n)
			require.NoError(t, w.Sync())
			require.NoError(t, w.Close())

			blob, err := store.Open(ctx, "weights/knn.gwt")
			require.NoError(t, err)
			defer blob.Close()

			require.Equal(t, int64(len(data)), blob.Size())

			buf := make([]byte, 6)
			n, err = blob.ReadAt(ctx, buf, 4)
			require.NoError(t, err)
			assert.Equal(t, 6, n)
			assert.Equal(t, "cities", string(buf))

			rc, err := NewReader(ctx, blob)
			require.NoError(t, err)
			all, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, data, all)

			m, ok := blob.(Mappable)
			require.True(t, ok)
			b, err := m.Bytes()
			require.NoError(t, err)
			assert.Equal(t, data, b)

			require.NoError(t, store.Put(ctx, "weights/threshold.gwt", []byte("0 0 x y\n")))
			require.NoError(t, store.Put(ctx, "other.gwt", nil))

			names, err := store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"other.gwt", "weights/knn.gwt", "weights/threshold.gwt"}, names)

			names, err = store.List(ctx, "weights/")
			require.NoError(t, err)
			assert.Equal(t, []string{"weights/knn.gwt", "weights/threshold.gwt"}, names)

			require.NoError(t, store.Delete(ctx, "weights/knn.gwt"))
			require.NoError(t, store.Delete(ctx, "weights/knn.gwt"))

			_, err = store.Open(ctx, "weights/knn.gwt")
			assert.ErrorIs(t, err, ErrNotFound)

			empty, err := store.Open(ctx, "other.gwt")
			require.NoError(t, err)
			defer empty.Close()
			assert.Zero(t, empty.Size())

			rc, err = NewReader(ctx, empty)
			require.NoError(t, err)
			all, err = io.ReadAll(rc)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestReadRangeBoundaries(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "b", []byte("0123456789")))

			blob, err := store.Open(ctx, "b")
			require.NoError(t, err)
			defer blob.Close()

			r, err := blob.ReadRange(ctx, 8, 5)
			require.NoError(t, err)
			content, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "89", string(content))

			_, err = blob.ReadRange(ctx, 20, 5)
			assert.ErrorIs(t, err, io.EOF)

			buf := make([]byte, 4)
			n, err := blob.ReadAt(ctx, buf, 8)
			assert.Equal(t, 2, n)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestLocalStoreAtomicCreate(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	w, err := store.Create(ctx, "pending.gwt")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)

	// Not visible before Close.
	_, err = os.Stat(filepath.Join(dir, "pending.gwt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, w.Close())
	assert.Error(t, w.Close())

	_, err = os.Stat(filepath.Join(dir, "pending.gwt"))
	assert.NoError(t, err)
}

func TestLocalStoreListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'z'

	blob, err := store.Open(ctx, "x")
	require.NoError(t, err)
	b, err := blob.(Mappable).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b))
}

func TestAbortDiscardsPendingWrite(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			w, err := store.Create(ctx, "partial.gwt")
			require.NoError(t, err)
			_, err = w.Write([]byte("0 2 layer id\n"))
			require.NoError(t, err)
			require.NoError(t, Abort(w))

			_, err = store.Open(ctx, "partial.gwt")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLocalStoreFaults(t *testing.T) {
	tests := []struct {
		name  string
		fault gwfs.Fault
	}{
		{"write", gwfs.Fault{FailAfterBytes: 2}},
		{"sync", gwfs.Fault{FailAfterBytes: -1, FailOnSync: true}},
		{"close", gwfs.Fault{FailAfterBytes: -1, FailOnClose: true}},
		{"rename", gwfs.Fault{FailAfterBytes: -1, FailOnRename: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			ffs := gwfs.NewFaultyFS(nil)
			ffs.AddRule("w.gwt", tt.fault)
			store := &LocalStore{root: dir, fsys: ffs}

			err := store.Put(context.Background(), "w.gwt", []byte("0 1 layer id\n"))
			assert.ErrorIs(t, err, gwfs.ErrInjected)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}
