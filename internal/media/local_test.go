package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorePutDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "static"), "/static/")
	require.NoError(t, err)

	ref, err := store.Put(ctx, "post1_media_0.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	require.Equal(t, "/static/post1_media_0.jpg", ref)

	data, err := os.ReadFile(filepath.Join(store.Dir(), "post1_media_0.jpg"))
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg"), data)

	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(store.Dir(), "post1_media_0.jpg"))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, store.Delete(ctx, ref))
	require.NoError(t, store.Delete(ctx, "https://elsewhere/x.jpg"))
}

func TestLocalStoreStripsDirectories(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/static")
	require.NoError(t, err)

	ref, err := store.Put(context.Background(), "../../etc/passwd", "text/plain", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "/static/passwd", ref)
	_, err = os.Stat(filepath.Join(store.Dir(), "passwd"))
	require.NoError(t, err)
}
