package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

type StudyModule struct {
	Handler *handlers.StudyHandler
}

func NewStudyModule(h *handlers.StudyHandler) *StudyModule {
	return &StudyModule{Handler: h}
}

func (m *StudyModule) Register(rg *gin.RouterGroup) {
	studies := rg.Group("/studies", middleware.RequireMember())
	{
		studies.POST("", m.Handler.Create)
		studies.GET("", m.Handler.List)
		studies.GET("/:id", m.Handler.Get)
		studies.PUT("/:id", m.Handler.Update)
		studies.DELETE("/:id", m.Handler.Delete)
		studies.POST("/:id/members/:memberId", m.Handler.AddMember)
		studies.DELETE("/:id/members/:memberId", m.Handler.RemoveMember)
	}
}
