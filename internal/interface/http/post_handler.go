package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type PostHandler struct {
	Posts  *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(posts *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Logger: logger}
}

type categoryRequest struct {
	Name     string `json:"name" binding:"required,max=45"`
	ParentID *int64 `json:"parentId" binding:"omitempty,gt=0"`
}

type categoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID *int64 `json:"parentId"`
}

// postRequest binds both multipart forms and JSON bodies.
type postRequest struct {
	CategoryID   int64  `form:"categoryId" json:"categoryId" binding:"required,gt=0"`
	Title        string `form:"title" json:"title" binding:"required,max=50"`
	Content      string `form:"content" json:"content" binding:"required"`
	AllowComment bool   `form:"allowComment" json:"allowComment"`
	IsNotice     bool   `form:"isNotice" json:"isNotice"`
	IsSecret     bool   `form:"isSecret" json:"isSecret"`
	IsTemp       bool   `form:"isTemp" json:"isTemp"`
	Password     string `form:"password" json:"password" binding:"omitempty,max=16"`
}

type listPostsQuery struct {
	CategoryID *int64 `form:"categoryId"`
}

type postResponse struct {
	ID            int64     `json:"id"`
	CategoryID    int64     `json:"categoryId"`
	WriterID      int64     `json:"writerId"`
	Writer        string    `json:"writer"`
	Title         string    `json:"title"`
	Content       string    `json:"content,omitempty"`
	VisitCount    int       `json:"visitCount"`
	AllowComment  bool      `json:"allowComment"`
	IsNotice      bool      `json:"isNotice"`
	IsSecret      bool      `json:"isSecret"`
	IsTemp        bool      `json:"isTemp"`
	ThumbnailPath string    `json:"thumbnailPath"`
	LikeCount     int       `json:"likeCount"`
	DislikeCount  int       `json:"dislikeCount"`
	RegisterTime  time.Time `json:"registerTime"`
	UpdateTime    time.Time `json:"updateTime"`
}

type toggleResponse struct {
	Active bool `json:"active"`
}

func (r postRequest) input(ip string) application.PostInput {
	return application.PostInput{
		CategoryID:   r.CategoryID,
		Title:        r.Title,
		Content:      r.Content,
		AllowComment: r.AllowComment,
		IsNotice:     r.IsNotice,
		IsSecret:     r.IsSecret,
		IsTemp:       r.IsTemp,
		Password:     r.Password,
		IP:           ip,
	}
}

func toCategory(cat entity.Category) categoryResponse {
	return categoryResponse{ID: cat.ID, Name: cat.Name, Slug: cat.Slug, ParentID: cat.ParentID}
}

// toPost hides content of secret posts unless withContent is set.
func (h *PostHandler) toPost(p entity.Post, withContent bool) postResponse {
	out := postResponse{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		WriterID:      p.MemberID,
		Writer:        p.WriterName,
		Title:         p.Title,
		VisitCount:    p.VisitCount,
		AllowComment:  p.AllowComment,
		IsNotice:      p.IsNotice,
		IsSecret:      p.IsSecret,
		IsTemp:        p.IsTemp,
		ThumbnailPath: h.Posts.Files.ThumbnailURL(p.ThumbnailPath),
		LikeCount:     p.LikeCount,
		DislikeCount:  p.DislikeCount,
		RegisterTime:  p.RegisterTime,
		UpdateTime:    p.UpdateTime,
	}
	if withContent || !p.IsSecret {
		out.Content = p.Content
	}
	return out
}

// CreateCategory handles POST /api/categories
func (h *PostHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cat, err := h.Posts.CreateCategory(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, toCategory(*cat))
}

// ListCategories handles GET /api/categories
func (h *PostHandler) ListCategories(c *gin.Context) {
	cats, err := h.Posts.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategory(cat))
	}
	ok(c, out)
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *PostHandler) DeleteCategory(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.Posts.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// Create handles POST /api/posts (multipart: fields, thumbnail, files)
func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		badPayload(c, err)
		return
	}
	thumb, closer, err := formUpload(c, "thumbnail")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"thumbnail": err.Error()})
		return
	}
	defer closer.Close()
	var files []application.Upload
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		var closeAll func()
		files, closeAll, err = formUploads(c, "files")
		defer closeAll()
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"files": err.Error()})
			return
		}
	}
	p, err := h.Posts.CreatePost(c.Request.Context(), me(c), req.input(clientIP(c)), thumb, files)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, gin.H{"id": p.ID})
}

// Get handles GET /api/posts/:id?password=
func (h *PostHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := h.Posts.GetPost(c.Request.Context(), me(c), id, c.Query("password"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, h.toPost(*p, true))
}

// List handles GET /api/posts?categoryId=
func (h *PostHandler) List(c *gin.Context) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Posts.ListPosts(c.Request.Context(), q.CategoryID, p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, func(post entity.Post) postResponse { return h.toPost(post, false) })
}

// Search handles GET /api/posts/search?q=
func (h *PostHandler) Search(c *gin.Context) {
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Posts.SearchPosts(c.Request.Context(), c.Query("q"), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, func(post entity.Post) postResponse { return h.toPost(post, false) })
}

// Update handles PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		badPayload(c, err)
		return
	}
	p, err := h.Posts.UpdatePost(c.Request.Context(), me(c), id, req.input(clientIP(c)))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, h.toPost(*p, true))
}

// Delete handles DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.Posts.DeletePost(c.Request.Context(), me(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// ToggleLike handles PATCH /api/posts/:id/likes
func (h *PostHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.Posts.ToggleLike)
}

// ToggleDislike handles PATCH /api/posts/:id/dislikes
func (h *PostHandler) ToggleDislike(c *gin.Context) {
	h.toggle(c, h.Posts.ToggleDislike)
}

func (h *PostHandler) toggle(c *gin.Context, fn toggleFunc) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	active, err := fn(c.Request.Context(), me(c), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, toggleResponse{Active: active})
}
