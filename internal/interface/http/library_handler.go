package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type LibraryHandler struct {
	Library *application.LibraryService
	Logger  *logrus.Logger
}

func NewLibraryHandler(library *application.LibraryService, logger *logrus.Logger) *LibraryHandler {
	return &LibraryHandler{Library: library, Logger: logger}
}

type bookRequest struct {
	Title    string `form:"title" json:"title" binding:"required,max=100"`
	Author   string `form:"author" json:"author" binding:"required,max=45"`
	Quantity int    `form:"quantity" json:"quantity" binding:"required,min=1,max=20"`
}

type borrowListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=requests will_return overdue"`
}

type borrowLogQuery struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=REQUESTS DENIED IN_BORROWING RETURN_REQUESTS RETURNED RETURN_DENIED requests denied in_borrowing return_requests returned return_denied"`
}

type bookResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	TotalQuantity   int    `json:"totalQuantity"`
	CurrentQuantity int    `json:"currentQuantity"`
	ThumbnailPath   string `json:"thumbnailPath"`
}

type borrowResponse struct {
	ID              int64      `json:"id"`
	BookID          int64      `json:"bookId"`
	BookTitle       string     `json:"bookTitle"`
	Author          string     `json:"author"`
	MemberID        int64      `json:"memberId"`
	MemberRealName  string     `json:"memberRealName"`
	Status          string     `json:"status"`
	RequestDatetime time.Time  `json:"requestDatetime"`
	BorrowDate      *time.Time `json:"borrowDate"`
	ExpireDate      *time.Time `json:"expireDate"`
}

type borrowLogResponse struct {
	ID             int64     `json:"id"`
	BorrowInfoID   int64     `json:"borrowInfoId"`
	BookTitle      string    `json:"bookTitle"`
	Author         string    `json:"author"`
	MemberRealName string    `json:"memberRealName"`
	Status         string    `json:"status"`
	Time           time.Time `json:"time"`
}

func toBorrow(b entity.BookBorrowInfo) borrowResponse {
	return borrowResponse{
		ID:              b.ID,
		BookID:          b.BookID,
		BookTitle:       b.BookTitle,
		Author:          b.BookAuthor,
		MemberID:        b.MemberID,
		MemberRealName:  b.MemberRealName,
		Status:          string(b.Status),
		RequestDatetime: b.LastRequestDate,
		BorrowDate:      b.BorrowDate,
		ExpireDate:      b.ExpireDate,
	}
}

// CreateBook handles POST /api/books (JSON or multipart with thumbnail)
func (h *LibraryHandler) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBind(&req); err != nil {
		badPayload(c, err)
		return
	}
	thumb, closer, err := formUpload(c, "thumbnail")
	if err != nil {
		badPayload(c, err)
		return
	}
	defer closer.Close()
	b, err := h.Library.CreateBook(c.Request.Context(), req.Title, req.Author, req.Quantity, thumb)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, gin.H{"id": b.ID})
}

// ListBooks handles GET /api/books?search=
func (h *LibraryHandler) ListBooks(c *gin.Context) {
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Library.ListBooks(c.Request.Context(), c.Query("search"), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, func(b entity.Book) bookResponse {
		return bookResponse{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			TotalQuantity:   b.TotalQuantity,
			CurrentQuantity: b.CurrentQuantity,
			ThumbnailPath:   h.Library.Files.ThumbnailURL(b.ThumbnailPath),
		}
	})
}

// RequestBorrow handles POST /api/books/:id/borrow-requests
func (h *LibraryHandler) RequestBorrow(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	info, err := h.Library.RequestBorrow(c.Request.Context(), me(c), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, toBorrow(*info))
}

// RequestReturn handles POST /api/borrows/:id/return-requests
func (h *LibraryHandler) RequestReturn(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.Library.RequestReturn(c.Request.Context(), me(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// ListBorrows handles GET /api/manage/borrows?status=
func (h *LibraryHandler) ListBorrows(c *gin.Context) {
	var q borrowListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Library.ListBorrows(c.Request.Context(), repo.BorrowFilter(q.Status), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, toBorrow)
}

// SearchLogs handles GET /api/manage/borrows/logs?search=&status=
func (h *LibraryHandler) SearchLogs(c *gin.Context) {
	var q borrowLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	status := entity.BorrowStatus(strings.ToUpper(q.Status))
	items, total, err := h.Library.SearchLogs(c.Request.Context(), q.Search, status, p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, func(l entity.BookBorrowLog) borrowLogResponse {
		return borrowLogResponse{
			ID:             l.ID,
			BorrowInfoID:   l.BorrowInfoID,
			BookTitle:      l.BookTitle,
			Author:         l.BookAuthor,
			MemberRealName: l.MemberRealName,
			Status:         string(l.BorrowStatus),
			Time:           l.Time,
		}
	})
}

// ApproveBorrow handles POST /api/manage/borrows/:id/requests-approve
func (h *LibraryHandler) ApproveBorrow(c *gin.Context) {
	h.transition(c, h.Library.ApproveBorrow)
}

// DenyBorrow handles POST /api/manage/borrows/:id/requests-deny
func (h *LibraryHandler) DenyBorrow(c *gin.Context) {
	h.transition(c, h.Library.DenyBorrow)
}

// ApproveReturn handles POST /api/manage/borrows/:id/return-approve
func (h *LibraryHandler) ApproveReturn(c *gin.Context) {
	h.transition(c, h.Library.ApproveReturn)
}

// DenyReturn handles POST /api/manage/borrows/:id/return-deny
func (h *LibraryHandler) DenyReturn(c *gin.Context) {
	h.transition(c, h.Library.DenyReturn)
}

func (h *LibraryHandler) transition(c *gin.Context, fn idFunc) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
