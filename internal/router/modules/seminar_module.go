package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

type SeminarModule struct {
	Handler *handlers.SeminarHandler
}

func NewSeminarModule(h *handlers.SeminarHandler) *SeminarModule {
	return &SeminarModule{Handler: h}
}

func (m *SeminarModule) Register(rg *gin.RouterGroup) {
	seminars := rg.Group("/seminars", middleware.RequireMember())
	admin := middleware.RequireRoles(entity.JobPresident, entity.JobVicePresident, entity.JobClerk)

	seminars.GET("/available", m.Handler.Available)
	seminars.GET("/calendar.ics", m.Handler.Calendar)
	seminars.POST("/:id/attendances", m.Handler.Attend)
	seminars.PUT("/:id/excuse", m.Handler.SubmitExcuse)

	seminars.POST("", admin, m.Handler.Create)
	seminars.GET("", admin, m.Handler.List)
	seminars.GET("/:id", admin, m.Handler.Get)
	seminars.POST("/:id", admin, m.Handler.Start)
	seminars.DELETE("/:id", admin, m.Handler.Delete)
	seminars.GET("/:id/attendances", admin, m.Handler.ListAttendances)
	seminars.PUT("/:id/attendances/:memberId", admin, m.Handler.SetAttendanceStatus)
}
