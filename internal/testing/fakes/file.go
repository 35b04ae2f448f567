package fakes

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type FileRepository struct{ s *Store }

func (s *Store) Files() *FileRepository { return &FileRepository{s} }

func (r *FileRepository) CreateFile(_ context.Context, f *entity.File) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.ID = r.s.next()
	cp := *f
	r.s.files[f.ID] = &cp
	return nil
}

func (r *FileRepository) GetFile(_ context.Context, id int64) (*entity.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *FileRepository) DeleteFile(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.files[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.files, id)
	return nil
}

func (r *FileRepository) CreateThumbnail(_ context.Context, t *entity.Thumbnail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.next()
	cp := *t
	r.s.thumbnails[t.ID] = &cp
	return nil
}

func (r *FileRepository) GetThumbnail(_ context.Context, id int64) (*entity.Thumbnail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.thumbnails[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *FileRepository) DeleteThumbnail(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.thumbnails[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.thumbnails, id)
	return nil
}

// FileCount returns the number of stored file rows.
func (r *FileRepository) FileCount() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.files)
}

// Blobs is an in-memory BlobStorage.
type Blobs struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
}

func NewBlobs() *Blobs {
	return &Blobs{Objects: map[string][]byte{}, Types: map[string]string{}}
}

func (b *Blobs) Put(_ context.Context, path, contentType string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Objects[path] = buf.Bytes()
	b.Types[path] = contentType
	return nil
}

func (b *Blobs) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.Objects, path)
	delete(b.Types, path)
	return nil
}

func (b *Blobs) URL(path string) string { return "/files/" + path }

func (b *Blobs) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Objects)
}

var (
	_ repository.FileRepository = (*FileRepository)(nil)
	_ repository.BlobStorage    = (*Blobs)(nil)
)
