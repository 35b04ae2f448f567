package repository

import (
	"context"
	"io"
	"time"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

type FileRepository interface {
	CreateFile(ctx context.Context, f *entity.File) error
	GetFile(ctx context.Context, id int64) (*entity.File, error)
	DeleteFile(ctx context.Context, id int64) error
	CreateThumbnail(ctx context.Context, t *entity.Thumbnail) error
	GetThumbnail(ctx context.Context, id int64) (*entity.Thumbnail, error)
	DeleteThumbnail(ctx context.Context, id int64) error
}

// BlobStorage keeps file contents. Paths are relative and use forward slashes.
type BlobStorage interface {
	Put(ctx context.Context, path, contentType string, r io.Reader) error
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

// TokenStore holds refresh tokens that are still allowed to renew a session.
type TokenStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

// AuthCodeStore holds email verification codes keyed by address.
type AuthCodeStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, bool, error)
	Delete(ctx context.Context, email string) error
}

// PostIndex is the full-text index over posts.
type PostIndex interface {
	Index(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, postID int64) error
	Search(ctx context.Context, query string, page PageRequest) ([]int64, int64, error)
}
