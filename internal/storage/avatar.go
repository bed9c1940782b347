// Package storage persists uploaded avatar blobs and hands back the
// server-relative path stored on the user record.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fixitworks/fixit/internal/config"
	"github.com/google/uuid"
)

type AvatarStore interface {
	// Save writes the blob and returns a server-relative path such as
	// /uploads/avatars/<name>.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

type diskStore struct {
	dir string
}

func NewDiskStore(cfg config.Config) AvatarStore {
	return &diskStore{dir: cfg.UploadDir}
}

func (s *diskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	_ = ctx
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	dest := filepath.Join(s.dir, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dest)
		return "", err
	}

	return fmt.Sprintf("/%s/%s", filepath.ToSlash(s.dir), name), nil
}
