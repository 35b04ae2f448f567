package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
)

func postRoutes(e *testEnv, m *entity.Member) {
	posts := application.NewPostService(e.store.Categories(), e.store.Posts(), fakes.NewIndex(), e.files, fakes.Tx{}, nil)
	comments := application.NewCommentService(e.store.Comments(), e.store.Posts(), e.files, fakes.Tx{}, e.cfg.VirtualMemberID, nil)
	h := NewPostHandler(posts, nil)
	ch := NewCommentHandler(comments, nil)
	g := e.router.Group("/api", as(m))
	g.POST("/categories", h.CreateCategory)
	g.POST("/posts", h.Create)
	g.GET("/posts", h.List)
	g.GET("/posts/search", h.Search)
	g.GET("/posts/:id", h.Get)
	g.PATCH("/posts/:id/likes", h.ToggleLike)
	g.DELETE("/posts/:id", h.Delete)
	g.POST("/comments", ch.Create)
	g.GET("/comments/posts/:postId", ch.ListByPost)
	g.DELETE("/comments/:id", ch.Delete)
}

func multipartPost(t *testing.T, fields map[string]string, thumbnail []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if thumbnail != nil {
		fw, err := mw.CreateFormFile("thumbnail", "thumb.png")
		require.NoError(t, err)
		_, _ = fw.Write(thumbnail)
	}
	fw, err := mw.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("hello"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreatePostMultipartAndRead(t *testing.T) {
	e := newTestEnv(t)
	writer := e.member("writer", entity.JobMember)
	postRoutes(e, writer)

	w := e.do(t, http.MethodPost, "/api/categories", gin.H{"name": "Free Board"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "free-board", gjson.Get(w.Body.String(), "data.slug").String())
	categoryID := gjson.Get(w.Body.String(), "data.id").String()

	w = e.send(multipartPost(t, map[string]string{
		"categoryId":   categoryID,
		"title":        "hello",
		"content":      "first post",
		"allowComment": "true",
	}, pngHeader))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	postID := gjson.Get(w.Body.String(), "data.id").Int()

	w = e.do(t, http.MethodGet, "/api/posts/"+strconv.FormatInt(postID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := gjson.Parse(w.Body.String())
	assert.Equal(t, "first post", res.Get("data.content").String())
	assert.Equal(t, int64(1), res.Get("data.visitCount").Int())
	assert.NotEqual(t, "/img/default.png", res.Get("data.thumbnailPath").String())

	w = e.do(t, http.MethodPatch, "/api/posts/"+strconv.FormatInt(postID, 10)+"/likes", nil)
	assert.True(t, gjson.Get(w.Body.String(), "data.active").Bool())

	w = e.do(t, http.MethodGet, "/api/posts?categoryId="+categoryID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res = gjson.Parse(w.Body.String())
	assert.Equal(t, int64(1), res.Get("data.totalElements").Int())
	assert.Equal(t, int64(10), res.Get("data.size").Int())
	assert.Equal(t, "hello", res.Get("data.content.0.title").String())

	w = e.do(t, http.MethodGet, "/api/posts/search?q=first", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, postID, gjson.Get(w.Body.String(), "data.content.0.id").Int())
}

func TestListPostsRejectsBadPage(t *testing.T) {
	e := newTestEnv(t)
	postRoutes(e, e.member("writer"))

	for _, q := range []string{"size=0", "size=101", "page=-1", "page=abc"} {
		w := e.do(t, http.MethodGet, "/api/posts?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, "INVALID_PAGE_REQUEST", gjson.Get(w.Body.String(), "error.code").String(), q)
	}
}

func TestGetPostNotFoundAndBadID(t *testing.T) {
	e := newTestEnv(t)
	postRoutes(e, e.member("writer"))

	w := e.do(t, http.MethodGet, "/api/posts/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "POST_NOT_FOUND", gjson.Get(w.Body.String(), "error.code").String())

	w = e.do(t, http.MethodGet, "/api/posts/zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletedCommentKeepsRow(t *testing.T) {
	e := newTestEnv(t)
	e.member("virtual")
	writer := e.member("writer")
	postRoutes(e, writer)

	w := e.do(t, http.MethodPost, "/api/categories", gin.H{"name": "qna"})
	categoryID := gjson.Get(w.Body.String(), "data.id").String()
	w = e.send(multipartPost(t, map[string]string{
		"categoryId": categoryID, "title": "q", "content": "c", "allowComment": "true",
	}, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	postID := gjson.Get(w.Body.String(), "data.id").Int()

	w = e.do(t, http.MethodPost, "/api/comments", gin.H{"postId": postID, "content": "answer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	commentID := gjson.Get(w.Body.String(), "data.id").String()

	w = e.do(t, http.MethodDelete, "/api/comments/"+commentID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(t, http.MethodGet, "/api/comments/posts/"+strconv.FormatInt(postID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := gjson.Parse(w.Body.String())
	assert.Equal(t, application.DeletedCommentContent, res.Get("data.0.content").String())
	assert.Equal(t, "virtual", res.Get("data.0.writer").String())
}
