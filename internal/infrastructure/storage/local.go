package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

// LocalStorage writes blobs under a root directory on the local filesystem.
type LocalStorage struct {
	Root      string
	PublicURL string
}

func NewLocalStorage(root, publicURL string) *LocalStorage {
	return &LocalStorage{Root: root, PublicURL: publicURL}
}

func (s *LocalStorage) abs(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", os.ErrPermission
	}
	return filepath.Join(s.Root, clean), nil
}

func (s *LocalStorage) Put(_ context.Context, path, _ string, r io.Reader) error {
	dst, err := s.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return err
	}
	return f.Close()
}

// Delete ignores blobs that are already gone.
func (s *LocalStorage) Delete(_ context.Context, path string) error {
	dst, err := s.abs(path)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStorage) URL(path string) string {
	return strings.TrimSuffix(s.PublicURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

var _ repository.BlobStorage = (*LocalStorage)(nil)
