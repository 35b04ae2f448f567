package application

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

// Upload is a file received from a client.
type Upload struct {
	FileName string
	Reader   io.Reader
	IP       string
}

type FileService struct {
	Files            repo.FileRepository
	Blobs            repo.BlobStorage
	DefaultThumbnail string
	Logger           *logrus.Logger
	Clock            func() time.Time
}

func NewFileService(files repo.FileRepository, blobs repo.BlobStorage, defaultThumbnail string, logger *logrus.Logger) *FileService {
	return &FileService{Files: files, Blobs: blobs, DefaultThumbnail: defaultThumbnail, Logger: logger}
}

// SaveFile stores the upload under <yyyy-MM-dd>/<uuid><ext> and records it.
func (s *FileService) SaveFile(ctx context.Context, up Upload) (*entity.File, error) {
	data, mt, err := readUpload(up)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, up, data, mt)
}

// SaveThumbnail stores an image upload and records it as a thumbnail.
func (s *FileService) SaveThumbnail(ctx context.Context, up Upload) (*entity.Thumbnail, error) {
	data, mt, err := readUpload(up)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperror.New(up.FileName, "thumbnail", apperror.ThumbnailNotImage)
	}
	f, err := s.store(ctx, up, data, mt)
	if err != nil {
		return nil, err
	}
	t := &entity.Thumbnail{Path: f.FilePath, FileID: &f.ID}
	if err := s.Files.CreateThumbnail(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SaveOptionalThumbnail is SaveThumbnail for a nil-able upload.
func (s *FileService) SaveOptionalThumbnail(ctx context.Context, up *Upload) (*int64, error) {
	if up == nil {
		return nil, nil
	}
	t, err := s.SaveThumbnail(ctx, *up)
	if err != nil {
		return nil, err
	}
	return &t.ID, nil
}

// DeleteThumbnail removes the thumbnail row, its file row and the stored blob.
func (s *FileService) DeleteThumbnail(ctx context.Context, id int64) error {
	t, err := s.Files.GetThumbnail(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Files.DeleteThumbnail(ctx, id); err != nil {
		return err
	}
	if t.FileID == nil {
		return nil
	}
	f, err := s.Files.GetFile(ctx, *t.FileID)
	if err != nil {
		return err
	}
	if err := s.Files.DeleteFile(ctx, f.ID); err != nil {
		return err
	}
	if err := s.Blobs.Delete(ctx, f.FilePath); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("path", f.FilePath).Warn("delete blob failed")
	}
	return nil
}

// ThumbnailURL returns the public URL of a stored thumbnail path, or the default thumbnail.
func (s *FileService) ThumbnailURL(path string) string {
	if path == "" {
		return s.DefaultThumbnail
	}
	return s.Blobs.URL(path)
}

func (s *FileService) store(ctx context.Context, up Upload, data []byte, mt *mimetype.MIME) (*entity.File, error) {
	now := nowFrom(s.Clock)
	ext := strings.ToLower(filepath.Ext(up.FileName))
	if ext == "" {
		ext = mt.Extension()
	}
	path := now.Format("2006-01-02") + "/" + uuid.NewString() + ext
	if err := s.Blobs.Put(ctx, path, mt.String(), bytes.NewReader(data)); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("path", path).Error("store blob failed")
		}
		return nil, apperror.New(up.FileName, "file", apperror.FileSaveFailed)
	}
	f := &entity.File{
		FileName:   filepath.Base(up.FileName),
		FilePath:   path,
		FileSize:   int64(len(data)),
		UploadTime: now,
		IPAddress:  up.IP,
	}
	if err := s.Files.CreateFile(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func readUpload(up Upload) ([]byte, *mimetype.MIME, error) {
	data, err := io.ReadAll(up.Reader)
	if err != nil {
		return nil, nil, apperror.New(up.FileName, "file", apperror.FileSaveFailed)
	}
	return data, mimetype.Detect(data), nil
}
