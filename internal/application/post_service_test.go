package application

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

func newPosts(f *fixture) *PostService {
	return NewPostService(f.store.Categories(), f.store.Posts(), f.index, f.files, fakesTx(), nil)
}

func TestCreateCategorySlugs(t *testing.T) {
	f := newFixture(t)
	s := newPosts(f)
	ctx := context.Background()

	a, err := s.CreateCategory(ctx, "Free Board", nil)
	require.NoError(t, err)
	assert.Equal(t, "free-board", a.Slug)

	b, err := s.CreateCategory(ctx, "Free board!", nil)
	require.NoError(t, err)
	assert.Equal(t, "free-board-2", b.Slug)

	missing := int64(999)
	_, err = s.CreateCategory(ctx, "child", &missing)
	assert.True(t, apperror.HasCode(err, apperror.CategoryNotFound))
}

func TestCreatePostWithFiles(t *testing.T) {
	f := newFixture(t)
	writer := f.member("writer", 0)
	s := newPosts(f)
	ctx := context.Background()
	cat, err := s.CreateCategory(ctx, "notice", nil)
	require.NoError(t, err)

	thumb := &Upload{FileName: "t.png", Reader: bytes.NewReader(pngHeader)}
	files := []Upload{{FileName: "a.txt", Reader: strings.NewReader("hello")}}
	p, err := s.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "Welcome", Content: "first post", AllowComment: true}, thumb, files)
	require.NoError(t, err)
	require.NotNil(t, p.ThumbnailID)
	assert.Equal(t, 2, f.blobs.Len())
	assert.True(t, f.index.Has(p.ID))

	found, total, err := s.SearchPosts(ctx, "welcome", repository.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, found, 1)
	assert.Equal(t, "writer", found[0].WriterName)

	_, err = s.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "x"}, &Upload{FileName: "t.png", Reader: strings.NewReader("not an image")}, nil)
	assert.True(t, apperror.HasCode(err, apperror.ThumbnailNotImage))
}

func TestGetSecretPost(t *testing.T) {
	f := newFixture(t)
	writer := f.member("writer", 0)
	reader := f.member("reader", 0)
	s := newPosts(f)
	ctx := context.Background()
	cat, _ := s.CreateCategory(ctx, "qna", nil)

	p, err := s.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "secret", IsSecret: true, Password: "1234"}, nil, nil)
	require.NoError(t, err)

	_, err = s.GetPost(ctx, reader.ID, p.ID, "0000")
	assert.True(t, apperror.HasCode(err, apperror.PostPasswordMismatch))

	got, err := s.GetPost(ctx, reader.ID, p.ID, "1234")
	require.NoError(t, err)
	assert.Equal(t, 1, got.VisitCount)

	got, err = s.GetPost(ctx, reader.ID, p.ID, "1234")
	require.NoError(t, err)
	assert.Equal(t, 1, got.VisitCount)

	got, err = s.GetPost(ctx, writer.ID, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, got.VisitCount)
}

func TestTempPostIsWriterOnly(t *testing.T) {
	f := newFixture(t)
	writer := f.member("writer", 0)
	other := f.member("other", 0)
	s := newPosts(f)
	ctx := context.Background()
	cat, _ := s.CreateCategory(ctx, "free", nil)

	p, err := s.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "draft", IsTemp: true}, nil, nil)
	require.NoError(t, err)

	_, err = s.GetPost(ctx, other.ID, p.ID, "")
	assert.True(t, apperror.HasCode(err, apperror.PostNotWriter))

	list, total, err := s.ListPosts(ctx, &cat.ID, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	_, err = s.UpdatePost(ctx, other.ID, p.ID, PostInput{CategoryID: cat.ID})
	assert.True(t, apperror.HasCode(err, apperror.PostNotWriter))
	assert.True(t, apperror.HasCode(s.DeletePost(ctx, other.ID, p.ID), apperror.PostNotWriter))
}

func TestDeletePostRemovesThumbnailAndIndex(t *testing.T) {
	f := newFixture(t)
	writer := f.member("writer", 0)
	s := newPosts(f)
	ctx := context.Background()
	cat, _ := s.CreateCategory(ctx, "free", nil)

	p, err := s.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "bye"}, &Upload{FileName: "t.png", Reader: bytes.NewReader(pngHeader)}, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeletePost(ctx, writer.ID, p.ID))
	assert.Zero(t, f.blobs.Len())
	assert.False(t, f.index.Has(p.ID))
	_, err = s.GetPost(ctx, writer.ID, p.ID, "")
	assert.True(t, apperror.HasCode(err, apperror.PostNotFound))
}

func TestDeleteCategoryCascadesPosts(t *testing.T) {
	f := newFixture(t)
	writer := f.member("writer", 0)
	s := newPosts(f)
	ctx := context.Background()
	cat, _ := s.CreateCategory(ctx, "old", nil)
	p, err := s.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "gone"}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, cat.ID))
	_, err = f.store.Posts().GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.True(t, apperror.HasCode(s.DeleteCategory(ctx, cat.ID), apperror.CategoryNotFound))
}

func TestTogglePostLike(t *testing.T) {
	f := newFixture(t)
	writer := f.member("writer", 0)
	s := newPosts(f)
	ctx := context.Background()
	cat, _ := s.CreateCategory(ctx, "free", nil)
	p, _ := s.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "like me"}, nil, nil)

	on, err := s.ToggleLike(ctx, writer.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, on)
	got, _ := f.store.Posts().GetByID(ctx, p.ID)
	assert.Equal(t, 1, got.LikeCount)

	on, err = s.ToggleLike(ctx, writer.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = s.ToggleDislike(ctx, writer.ID, 999)
	assert.True(t, apperror.HasCode(err, apperror.PostNotFound))
}

func TestCommentLifecycle(t *testing.T) {
	f := newFixture(t)
	virtual := f.member("virtual", 0)
	f.cfg.VirtualMemberID = virtual.ID
	writer := f.member("writer", 0)
	other := f.member("other", 0)
	posts := newPosts(f)
	ctx := context.Background()
	cat, _ := posts.CreateCategory(ctx, "free", nil)
	p, _ := posts.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "talk", AllowComment: true}, nil, nil)
	closed, _ := posts.CreatePost(ctx, writer.ID, PostInput{CategoryID: cat.ID, Title: "quiet"}, nil, nil)

	s := NewCommentService(f.store.Comments(), f.store.Posts(), f.files, fakesTx(), f.cfg.VirtualMemberID, nil)

	_, err := s.Create(ctx, other.ID, closed.ID, nil, "hi", "")
	assert.True(t, apperror.HasCode(err, apperror.PostCommentNotAllowed))

	c, err := s.Create(ctx, other.ID, p.ID, nil, "hello", "127.0.0.1")
	require.NoError(t, err)
	reply, err := s.Create(ctx, writer.ID, p.ID, &c.ID, "welcome", "")
	require.NoError(t, err)
	assert.Equal(t, c.ID, *reply.ParentID)

	_, err = s.Update(ctx, writer.ID, c.ID, "edited")
	assert.True(t, apperror.HasCode(err, apperror.CommentNotWriter))

	_, err = s.ToggleLike(ctx, writer.ID, c.ID)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, other.ID, c.ID))
	list, err := s.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	var deleted entity.Comment
	for _, cm := range list {
		if cm.ID == c.ID {
			deleted = cm
		}
	}
	assert.Equal(t, virtual.ID, deleted.MemberID)
	assert.Equal(t, DeletedCommentContent, deleted.Content)
	assert.Zero(t, deleted.LikeCount)
	assert.Equal(t, "/img/default.png", deleted.WriterThumbnailPath)
}
