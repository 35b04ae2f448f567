package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

type LibraryModule struct {
	Handler *handlers.LibraryHandler
}

func NewLibraryModule(h *handlers.LibraryHandler) *LibraryModule {
	return &LibraryModule{Handler: h}
}

func (m *LibraryModule) Register(rg *gin.RouterGroup) {
	librarian := middleware.RequireRoles(entity.JobLibrarian)

	books := rg.Group("/books", middleware.RequireMember())
	{
		books.POST("", librarian, m.Handler.CreateBook)
		books.GET("", m.Handler.ListBooks)
		books.POST("/:id/borrow-requests", m.Handler.RequestBorrow)
	}
	rg.POST("/borrows/:id/return-requests", middleware.RequireMember(), m.Handler.RequestReturn)

	manage := rg.Group("/manage/borrows", librarian)
	{
		manage.GET("", m.Handler.ListBorrows)
		manage.GET("/logs", m.Handler.SearchLogs)
		manage.POST("/:id/requests-approve", m.Handler.ApproveBorrow)
		manage.POST("/:id/requests-deny", m.Handler.DenyBorrow)
		manage.POST("/:id/return-approve", m.Handler.ApproveReturn)
		manage.POST("/:id/return-deny", m.Handler.DenyReturn)
	}
}
