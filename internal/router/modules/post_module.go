package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

// PostModule wires categories, posts and comments.
type PostModule struct {
	Posts    *handlers.PostHandler
	Comments *handlers.CommentHandler
}

func NewPostModule(posts *handlers.PostHandler, comments *handlers.CommentHandler) *PostModule {
	return &PostModule{Posts: posts, Comments: comments}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/", middleware.RequireMember())

	admin := middleware.RequireRoles(entity.JobPresident, entity.JobSystemAdmin)
	auth.POST("/categories", admin, m.Posts.CreateCategory)
	auth.GET("/categories", m.Posts.ListCategories)
	auth.DELETE("/categories/:id", admin, m.Posts.DeleteCategory)

	auth.POST("/posts", m.Posts.Create)
	auth.GET("/posts", m.Posts.List)
	auth.GET("/posts/search", m.Posts.Search)
	auth.GET("/posts/:id", m.Posts.Get)
	auth.PUT("/posts/:id", m.Posts.Update)
	auth.DELETE("/posts/:id", m.Posts.Delete)
	auth.PATCH("/posts/:id/likes", m.Posts.ToggleLike)
	auth.PATCH("/posts/:id/dislikes", m.Posts.ToggleDislike)

	auth.POST("/comments", m.Comments.Create)
	auth.GET("/comments/posts/:postId", m.Comments.ListByPost)
	auth.PATCH("/comments/:id", m.Comments.Update)
	auth.DELETE("/comments/:id", m.Comments.Delete)
	auth.PATCH("/comments/:id/likes", m.Comments.ToggleLike)
	auth.PATCH("/comments/:id/dislikes", m.Comments.ToggleDislike)
}
