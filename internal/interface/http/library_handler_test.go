package handlers

import (
	"net/http"
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

func TestBorrowLifecycleThroughManageRoutes(t *testing.T) {
	e := newTestEnv(t)
	librarian := e.member("librarian", entity.JobLibrarian)
	reader := e.member("reader", entity.JobMember)
	library := application.NewLibraryService(e.store.Books(), e.store.Borrows(), e.files, fakes.Tx{}, nil, e.cfg, nil)
	h := NewLibraryHandler(library, nil)

	lib := e.router.Group("/lib", as(librarian))
	lib.POST("/books", h.CreateBook)
	lib.GET("/manage/borrows", h.ListBorrows)
	lib.GET("/manage/borrows/logs", h.SearchLogs)
	lib.POST("/manage/borrows/:id/requests-approve", h.ApproveBorrow)
	lib.POST("/manage/borrows/:id/return-approve", h.ApproveReturn)
	mem := e.router.Group("/mem", as(reader))
	mem.GET("/books", h.ListBooks)
	mem.POST("/books/:id/borrow-requests", h.RequestBorrow)
	mem.POST("/borrows/:id/return-requests", h.RequestReturn)

	w := e.do(t, http.MethodPost, "/lib/books", gin.H{"title": "The Go Programming Language", "author": "Donovan", "quantity": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookID := strconv.FormatInt(gjson.Get(w.Body.String(), "data.id").Int(), 10)

	w = e.do(t, http.MethodGet, "/mem/books?search=go", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "data.content.0.currentQuantity").Int())

	w = e.do(t, http.MethodPost, "/mem/books/"+bookID+"/borrow-requests", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	borrowID := strconv.FormatInt(gjson.Get(w.Body.String(), "data.id").Int(), 10)
	assert.Equal(t, "REQUESTS", gjson.Get(w.Body.String(), "data.status").String())

	w = e.do(t, http.MethodGet, "/lib/manage/borrows?status=requests", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "data.totalElements").Int())
	assert.Equal(t, "reader", gjson.Get(w.Body.String(), "data.content.0.memberRealName").String())

	w = e.do(t, http.MethodPost, "/mem/borrows/"+borrowID+"/return-requests", nil)
	assert.Equal(t, "BORROW_STATUS_IS_NOT_BORROWING", gjson.Get(w.Body.String(), "error.code").String())

	require.Equal(t, http.StatusNoContent, e.do(t, http.MethodPost, "/lib/manage/borrows/"+borrowID+"/requests-approve", nil).Code)
	require.Equal(t, http.StatusNoContent, e.do(t, http.MethodPost, "/mem/borrows/"+borrowID+"/return-requests", nil).Code)
	require.Equal(t, http.StatusNoContent, e.do(t, http.MethodPost, "/lib/manage/borrows/"+borrowID+"/return-approve", nil).Code)

	w = e.do(t, http.MethodGet, "/lib/manage/borrows/logs?status=returned", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "data.totalElements").Int())
	assert.Equal(t, "RETURNED", gjson.Get(w.Body.String(), "data.content.0.status").String())
}

func TestListBorrowsRejectsUnknownStatus(t *testing.T) {
	e := newTestEnv(t)
	library := application.NewLibraryService(e.store.Books(), e.store.Borrows(), e.files, fakes.Tx{}, nil, e.cfg, nil)
	h := NewLibraryHandler(library, nil)
	e.router.GET("/manage/borrows", h.ListBorrows)

	w := e.do(t, http.MethodGet, "/manage/borrows?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, gjson.Get(w.Body.String(), "error.status").Exists())
}
