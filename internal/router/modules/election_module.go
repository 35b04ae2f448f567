package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

type ElectionModule struct {
	Handler *handlers.ElectionHandler
}

func NewElectionModule(h *handlers.ElectionHandler) *ElectionModule {
	return &ElectionModule{Handler: h}
}

func (m *ElectionModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/elections", middleware.RequireRoles(entity.JobPresident, entity.JobVicePresident, entity.JobClerk))
	{
		admin.POST("", m.Handler.Create)
		admin.GET("", m.Handler.List)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.PATCH("/:id/open", m.Handler.Open)
		admin.PATCH("/:id/close", m.Handler.Close)
		admin.POST("/:id/candidates", m.Handler.RegisterCandidates)
		admin.DELETE("/:id/candidates/:candidateId", m.Handler.DeleteCandidate)
		admin.POST("/:id/voters", m.Handler.RegisterVoters)
	}

	voters := rg.Group("/elections", middleware.RequireMember())
	{
		voters.GET("/:id/candidates", m.Handler.ListCandidates)
		voters.POST("/:id/votes", m.Handler.Vote)
	}
}
