package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fixitworks/fixit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "avatars")
	store := NewDiskStore(config.Config{UploadDir: dir})

	path, err := store.Save(context.Background(), "me.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestDiskStoreUniqueNames(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(config.Config{UploadDir: dir})

	first, err := store.Save(context.Background(), "a.jpg", strings.NewReader("1"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "a.jpg", strings.NewReader("2"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
