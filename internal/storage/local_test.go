package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStorage_PutGet(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocal(dir)
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("\x89PNG\r\n\x1a\nfake image bytes")

	info, err := st.Put(ctx, "id-1.png", bytes.NewReader(data), PutObjectOptions{Size: int64(len(data)), ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "id-1.png", info.Key)
	assert.Equal(t, int64(len(data)), info.Size)

	_, err = os.Stat(filepath.Join(dir, "id-1.png"))
	assert.NoError(t, err)

	rc, got, err := st.Get(ctx, "id-1.png")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, body)
	assert.Equal(t, int64(len(data)), got.Size)
}

func TestLocalStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "temp")
	_, err := NewLocal(dir)
	require.NoError(t, err)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestLocalStorage_GetMissing(t *testing.T) {
	st, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	rc, _, err := st.Get(context.Background(), "nope.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Nil(t, rc)
}

func TestLocalStorage_InvalidKey(t *testing.T) {
	st, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../escape.png", "a/b.png", `a\b.png`} {
		_, err := st.Put(context.Background(), key, strings.NewReader("x"), PutObjectOptions{})
		assert.ErrorIs(t, err, ErrInvalidKey, key)

		_, _, err = st.Get(context.Background(), key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestLocalStorage_FailedWriteLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocal(dir)
	require.NoError(t, err)

	_, err = st.Put(context.Background(), "id-2.png", failingReader{}, PutObjectOptions{Size: -1})
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	st, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = st.Put(ctx, "id-3.png", strings.NewReader("x"), PutObjectOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocal_RequiresDir(t *testing.T) {
	_, err := NewLocal("")
	assert.Error(t, err)
}
