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

func TestLocalStoragePutDelete(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/files/")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "2024-03-01/abc.png", "image/png", strings.NewReader("png")))
	b, err := os.ReadFile(filepath.Join(root, "2024-03-01", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))
	assert.Equal(t, "/files/2024-03-01/abc.png", s.URL("2024-03-01/abc.png"))

	require.NoError(t, s.Delete(ctx, "2024-03-01/abc.png"))
	require.NoError(t, s.Delete(ctx, "2024-03-01/abc.png"))
	_, err = os.Stat(filepath.Join(root, "2024-03-01", "abc.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/files")
	err := s.Put(context.Background(), "../outside.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, os.ErrPermission)
}
