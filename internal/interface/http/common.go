package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
	"github.com/keeper31337/homepage-api/pkg/response"
	"github.com/keeper31337/homepage-api/pkg/validation"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func clientIP(c *gin.Context) string {
	if ip := c.GetString(middleware.CtxRealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// fail writes err as a business error envelope, or a logged 500 for anything unexpected.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	if be, ok := apperror.As(err); ok {
		response.Error[any](c, be.Code.Status, be.Code.Message, gin.H{
			"code":  be.Code.Name,
			"field": be.Field,
			"value": be.Value,
		})
		return
	}
	if logger != nil {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"route":      c.FullPath(),
		})
	}
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// pathID parses an int64 path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid path parameter", gin.H{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

type pageQuery struct {
	Page *int `form:"page"`
	Size *int `form:"size"`
}

// pageRequest reads page (>= 0, default 0) and size (1..100, default 10).
func pageRequest(c *gin.Context) (repo.PageRequest, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, nil, apperror.New(c.Query("page"), "page", apperror.InvalidPageRequest))
		return repo.PageRequest{}, false
	}
	p := repo.PageRequest{Page: 0, Size: defaultPageSize}
	if q.Page != nil {
		if *q.Page < 0 {
			fail(c, nil, apperror.New(*q.Page, "page", apperror.InvalidPageRequest))
			return repo.PageRequest{}, false
		}
		p.Page = *q.Page
	}
	if q.Size != nil {
		if *q.Size < 1 || *q.Size > maxPageSize {
			fail(c, nil, apperror.New(*q.Size, "size", apperror.InvalidPageRequest))
			return repo.PageRequest{}, false
		}
		p.Size = *q.Size
	}
	return p, true
}

func writePage[S, T any](c *gin.Context, items []S, total int64, p repo.PageRequest, fn func(S) T) {
	response.Success(c, http.StatusOK, response.MapPage(items, p.Page, p.Size, total, fn), "ok", nil)
}

func me(c *gin.Context) int64 {
	return middleware.MemberID(c)
}

// formUpload turns an optional multipart file into an application.Upload.
// The returned closer must be called once the upload has been consumed.
func formUpload(c *gin.Context, field string) (*application.Upload, io.Closer, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, io.NopCloser(nil), nil
	}
	if err != nil {
		return nil, nil, err
	}
	return openUpload(c, fh)
}

func openUpload(c *gin.Context, fh *multipart.FileHeader) (*application.Upload, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &application.Upload{FileName: fh.Filename, Reader: f, IP: clientIP(c)}, f, nil
}

// formUploads opens every file sent under field.
func formUploads(c *gin.Context, field string) ([]application.Upload, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, closeAll, err
	}
	var out []application.Upload
	for _, fh := range form.File[field] {
		up, cl, err := openUpload(c, fh)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, cl)
		out = append(out, *up)
	}
	return out, closeAll, nil
}

func created(c *gin.Context, data any) {
	response.Success(c, http.StatusCreated, data, "created", nil)
}

func ok(c *gin.Context, data any) {
	response.Success(c, http.StatusOK, data, "ok", nil)
}

type toggleFunc func(ctx context.Context, memberID, id int64) (bool, error)

type idFunc func(ctx context.Context, id int64) error
