package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/container"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

type MemberModule struct {
	Handler *handlers.MemberHandler
}

func NewMemberModule(h *handlers.MemberHandler) *MemberModule {
	return &MemberModule{Handler: h}
}

func (m *MemberModule) Register(rg *gin.RouterGroup) {
	members := rg.Group("/members", middleware.RequireMember())
	{
		members.GET("/me", m.Handler.Me)
		members.PATCH("/me/thumbnail", m.Handler.ChangeThumbnail)
		members.POST("/me/email-auth",
			middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByMember(), nil),
			m.Handler.SendEmailChangeCode)
		members.PATCH("/me/email", m.Handler.ChangeEmail)
		members.GET("/ranking/point", m.Handler.PointRanking)
		members.GET("/:id", m.Handler.Get)
	}

	admin := rg.Group("/admin/members", middleware.RequireRoles(entity.JobPresident, entity.JobVicePresident))
	{
		admin.POST("/:id/jobs/:job", m.Handler.AssignJob)
		admin.DELETE("/:id/jobs/:job", m.Handler.RemoveJob)
	}
}
