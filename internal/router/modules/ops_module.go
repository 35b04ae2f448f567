package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/container"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

// OpsModule exposes health and Prometheus metrics.
type OpsModule struct {
	Health  *handlers.HealthHandler
	Metrics *middleware.Metrics
}

func NewOpsModule(health *handlers.HealthHandler, metrics *middleware.Metrics) *OpsModule {
	return &OpsModule{Health: health, Metrics: metrics}
}

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/health", rl, m.Health.Health)
	if m.Metrics != nil {
		rg.GET("/metrics", rl, gin.WrapH(m.Metrics.Handler()))
	}
}
