package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

type CtfModule struct {
	Handler *handlers.CtfHandler
}

func NewCtfModule(h *handlers.CtfHandler) *CtfModule {
	return &CtfModule{Handler: h}
}

func (m *CtfModule) Register(rg *gin.RouterGroup) {
	contests := rg.Group("/ctf/contests", middleware.RequireRoles(entity.JobPresident, entity.JobCtfAdmin))
	{
		contests.POST("", m.Handler.Create)
		contests.GET("", m.Handler.List)
		contests.PUT("/:id", m.Handler.Update)
		contests.PATCH("/:id/open", m.Handler.Open)
		contests.PATCH("/:id/close", m.Handler.Close)
	}
}
