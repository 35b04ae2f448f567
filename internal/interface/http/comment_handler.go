package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type CommentHandler struct {
	Comments *application.CommentService
	Logger   *logrus.Logger
}

func NewCommentHandler(comments *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Comments: comments, Logger: logger}
}

type createCommentRequest struct {
	PostID   int64  `json:"postId" binding:"required,gt=0"`
	ParentID *int64 `json:"parentId" binding:"omitempty,gt=0"`
	Content  string `json:"content" binding:"required,max=2000"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type commentResponse struct {
	ID                  int64     `json:"id"`
	ParentID            *int64    `json:"parentId"`
	Writer              string    `json:"writer"`
	WriterThumbnailPath string    `json:"writerThumbnailPath"`
	Content             string    `json:"content"`
	RegisterTime        time.Time `json:"registerTime"`
	LikeCount           int       `json:"likeCount"`
	DislikeCount        int       `json:"dislikeCount"`
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cm, err := h.Comments.Create(c.Request.Context(), me(c), req.PostID, req.ParentID, req.Content, clientIP(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, gin.H{"id": cm.ID})
}

// ListByPost handles GET /api/comments/posts/:postId
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, valid := pathID(c, "postId")
	if !valid {
		return
	}
	comments, err := h.Comments.ListByPost(c.Request.Context(), postID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentResponse{
			ID:                  cm.ID,
			ParentID:            cm.ParentID,
			Writer:              cm.WriterName,
			WriterThumbnailPath: cm.WriterThumbnailPath,
			Content:             cm.Content,
			RegisterTime:        cm.RegisterTime,
			LikeCount:           cm.LikeCount,
			DislikeCount:        cm.DislikeCount,
		})
	}
	ok(c, out)
}

// Update handles PATCH /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if _, err := h.Comments.Update(c.Request.Context(), me(c), id, req.Content); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.Comments.Delete(c.Request.Context(), me(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.Comments.ToggleLike)
}

func (h *CommentHandler) ToggleDislike(c *gin.Context) {
	h.toggle(c, h.Comments.ToggleDislike)
}

func (h *CommentHandler) toggle(c *gin.Context, fn toggleFunc) {
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
