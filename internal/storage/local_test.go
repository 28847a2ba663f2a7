package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:5000/uploads/")
	require.NoError(t, err)

	ctx := context.Background()
	blob, err := l.Put(ctx, "events/e1/a.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"), 10)
	require.NoError(t, err)
	assert.Equal(t, "events/e1/a.jpg", blob.Key)
	assert.Equal(t, "http://localhost:5000/uploads/events/e1/a.jpg", blob.URL)

	data, err := os.ReadFile(filepath.Join(dir, "events", "e1", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	key, ok := l.KeyFromURL(blob.URL)
	require.True(t, ok)
	assert.Equal(t, blob.Key, key)

	require.NoError(t, l.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "events", "e1", "a.jpg"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, l.Delete(ctx, key))
}

func TestLocalRejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = l.Put(context.Background(), "../escape.txt", "text/plain", strings.NewReader("x"), 1)
	assert.Error(t, err)
}

func TestLocalPresignUnsupported(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = l.Presign(context.Background(), "events/e1/a.jpg", "image/jpeg")
	assert.ErrorIs(t, err, ErrPresignUnsupported)
}

func TestKeyFromForeignURL(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, ok := l.KeyFromURL("https://elsewhere.example.com/x.jpg")
	assert.False(t, ok)
}
