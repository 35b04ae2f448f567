package storage

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"

	"github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

// GCSStorage writes blobs into a Google Cloud Storage bucket.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

func NewGCSStorage(client *storage.Client, bucket string) *GCSStorage {
	return &GCSStorage{client: client, bucket: bucket}
}

func (s *GCSStorage) Put(ctx context.Context, path, contentType string, r io.Reader) error {
	if s.client == nil || s.bucket == "" {
		return errors.New("gcs not configured")
	}
	return helpers.UploadObject(ctx, s.client, s.bucket, path, contentType, r)
}

func (s *GCSStorage) Delete(ctx context.Context, path string) error {
	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (s *GCSStorage) URL(path string) string {
	return helpers.PublicURL(s.bucket, path)
}

var _ repository.BlobStorage = (*GCSStorage)(nil)
