package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keeper31337/homepage-api/internal/container"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

// AuthModule serves sign-up, sign-in and sign-out.
// Public: POST /api/sign-up/email-auth, POST /api/sign-up, POST /api/sign-in
// Protected: POST /api/sign-out
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	emailAuthLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP()) // 5 req/min per IP
	signUpLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	signInLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.POST("/sign-up/email-auth", emailAuthLimiter, m.Handler.SendSignUpCode)
	rg.POST("/sign-up", signUpLimiter, m.Handler.SignUp)
	rg.POST("/sign-in", signInLimiter, m.Handler.SignIn)

	rg.POST("/sign-out", middleware.RequireMember(), m.Handler.SignOut)
}
