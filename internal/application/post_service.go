package application

import (
	"context"
	"errors"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

type PostService struct {
	Categories repo.CategoryRepository
	Posts      repo.PostRepository
	Index      repo.PostIndex // nil disables search
	Files      *FileService
	Tx         repo.Transactor
	Logger     *logrus.Logger
}

func NewPostService(categories repo.CategoryRepository, posts repo.PostRepository, index repo.PostIndex, files *FileService, tx repo.Transactor, logger *logrus.Logger) *PostService {
	return &PostService{Categories: categories, Posts: posts, Index: index, Files: files, Tx: tx, Logger: logger}
}

type PostInput struct {
	CategoryID   int64
	Title        string
	Content      string
	AllowComment bool
	IsNotice     bool
	IsSecret     bool
	IsTemp       bool
	Password     string
	IP           string
}

// CreateCategory stores a category with a unique slug derived from its name.
func (s *PostService) CreateCategory(ctx context.Context, name string, parentID *int64) (*entity.Category, error) {
	if parentID != nil {
		if _, err := s.Categories.GetByID(ctx, *parentID); err != nil {
			return nil, notFound(err, apperror.CategoryNotFound, "parentId", *parentID)
		}
	}
	base := slug.Make(name)
	if base == "" {
		base = "category"
	}
	c := &entity.Category{Name: name, ParentID: parentID}
	for i := 1; ; i++ {
		c.Slug = base
		if i > 1 {
			c.Slug = base + "-" + strconv.Itoa(i)
		}
		err := s.Categories.Create(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repo.ErrDuplicate) || i >= 10 {
			return nil, err
		}
	}
}

func (s *PostService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.Categories.List(ctx)
}

// DeleteCategory removes the category and every post in it.
func (s *PostService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.Categories.GetByID(ctx, id); err != nil {
		return notFound(err, apperror.CategoryNotFound, "categoryId", id)
	}
	return s.Categories.Delete(ctx, id)
}

func (s *PostService) CreatePost(ctx context.Context, writerID int64, in PostInput, thumbnail *Upload, files []Upload) (*entity.Post, error) {
	if _, err := s.Categories.GetByID(ctx, in.CategoryID); err != nil {
		return nil, notFound(err, apperror.CategoryNotFound, "categoryId", in.CategoryID)
	}
	p := &entity.Post{
		CategoryID:   in.CategoryID,
		MemberID:     writerID,
		Title:        in.Title,
		Content:      in.Content,
		IPAddress:    in.IP,
		AllowComment: in.AllowComment,
		IsNotice:     in.IsNotice,
		IsSecret:     in.IsSecret,
		IsTemp:       in.IsTemp,
	}
	if err := s.setPassword(p, in); err != nil {
		return nil, err
	}
	err := runTx(ctx, s.Tx, func(ctx context.Context) error {
		thumbID, err := s.Files.SaveOptionalThumbnail(ctx, thumbnail)
		if err != nil {
			return err
		}
		p.ThumbnailID = thumbID
		if err := s.Posts.Create(ctx, p); err != nil {
			return err
		}
		for _, up := range files {
			f, err := s.Files.SaveFile(ctx, up)
			if err != nil {
				return err
			}
			if err := s.Posts.AddFile(ctx, p.ID, f.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

func (s *PostService) setPassword(p *entity.Post, in PostInput) error {
	p.Password = nil
	if !in.IsSecret || in.Password == "" {
		return nil
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}
	p.Password = &hash
	return nil
}

// GetPost returns a post for reading. Secret posts need the password unless the reader wrote them.
// The first read by a member counts as a visit.
func (s *PostService) GetPost(ctx context.Context, memberID, postID int64, password string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, apperror.PostNotFound, "postId", postID)
	}
	if !p.IsWriter(memberID) {
		if p.IsTemp {
			return nil, apperror.New(postID, "postId", apperror.PostNotWriter)
		}
		if p.IsSecret && (p.Password == nil || !helpers.CompareHashAndPassword(*p.Password, password)) {
			return nil, apperror.New("", "password", apperror.PostPasswordMismatch)
		}
	}
	err = runTx(ctx, s.Tx, func(ctx context.Context) error {
		first, err := s.Posts.MarkRead(ctx, memberID, postID)
		if err != nil || !first {
			return err
		}
		if err := s.Posts.IncrementVisit(ctx, postID); err != nil {
			return err
		}
		p.VisitCount++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) ListPosts(ctx context.Context, categoryID *int64, page repo.PageRequest) ([]entity.Post, int64, error) {
	return s.Posts.List(ctx, categoryID, page)
}

// SearchPosts runs a full-text search and loads the hits in rank order.
func (s *PostService) SearchPosts(ctx context.Context, query string, page repo.PageRequest) ([]entity.Post, int64, error) {
	if s.Index == nil || query == "" {
		return []entity.Post{}, 0, nil
	}
	ids, total, err := s.Index.Search(ctx, query, page)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []entity.Post{}, total, nil
	}
	found, err := s.Posts.ListByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]entity.Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]entity.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, memberID, postID int64, in PostInput) (*entity.Post, error) {
	p, err := s.writerPost(ctx, memberID, postID)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != p.CategoryID {
		if _, err := s.Categories.GetByID(ctx, in.CategoryID); err != nil {
			return nil, notFound(err, apperror.CategoryNotFound, "categoryId", in.CategoryID)
		}
	}
	p.CategoryID = in.CategoryID
	p.Title = in.Title
	p.Content = in.Content
	p.AllowComment = in.AllowComment
	p.IsNotice = in.IsNotice
	p.IsSecret = in.IsSecret
	p.IsTemp = in.IsTemp
	if err := s.setPassword(p, in); err != nil {
		return nil, err
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, notFound(err, apperror.PostNotFound, "postId", postID)
	}
	s.index(ctx, p)
	return p, nil
}

func (s *PostService) DeletePost(ctx context.Context, memberID, postID int64) error {
	p, err := s.writerPost(ctx, memberID, postID)
	if err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, postID); err != nil {
		return notFound(err, apperror.PostNotFound, "postId", postID)
	}
	if p.ThumbnailID != nil {
		if err := s.Files.DeleteThumbnail(ctx, *p.ThumbnailID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", postID).Warn("delete post thumbnail failed")
		}
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, postID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", postID).Warn("remove post from index failed")
		}
	}
	return nil
}

// ToggleLike flips the member's like on a post and reports whether it is now set.
func (s *PostService) ToggleLike(ctx context.Context, memberID, postID int64) (bool, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return false, notFound(err, apperror.PostNotFound, "postId", postID)
	}
	return s.Posts.ToggleLike(ctx, memberID, postID)
}

func (s *PostService) ToggleDislike(ctx context.Context, memberID, postID int64) (bool, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return false, notFound(err, apperror.PostNotFound, "postId", postID)
	}
	return s.Posts.ToggleDislike(ctx, memberID, postID)
}

func (s *PostService) writerPost(ctx context.Context, memberID, postID int64) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, apperror.PostNotFound, "postId", postID)
	}
	if !p.IsWriter(memberID) {
		return nil, apperror.New(postID, "postId", apperror.PostNotWriter)
	}
	return p, nil
}

// index keeps the search index in step; failures only get logged.
func (s *PostService) index(ctx context.Context, p *entity.Post) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("post_id", p.ID).Warn("index post failed")
	}
}
