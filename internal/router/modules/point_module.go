package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

// PointModule wires point presents and the merit book.
type PointModule struct {
	Points *handlers.PointHandler
	Merits *handlers.MeritHandler
}

func NewPointModule(points *handlers.PointHandler, merits *handlers.MeritHandler) *PointModule {
	return &PointModule{Points: points, Merits: merits}
}

func (m *PointModule) Register(rg *gin.RouterGroup) {
	points := rg.Group("/points", middleware.RequireMember())
	{
		points.POST("/present", m.Points.Present)
		points.GET("/logs", m.Points.Logs)
	}

	merits := rg.Group("/merits", middleware.RequireRoles(entity.JobPresident, entity.JobVicePresident, entity.JobClerk))
	{
		merits.POST("/types", m.Merits.CreateType)
		merits.GET("/types", m.Merits.ListTypes)
		merits.POST("", m.Merits.Award)
		merits.GET("", m.Merits.ListLogs)
		merits.GET("/members/:id", m.Merits.ListByAwarder)
		merits.GET("/export", m.Merits.Export)
	}
}
