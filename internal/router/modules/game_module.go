package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
)

// GameModule wires the daily baseball game and its ranking.
type GameModule struct {
	Handler *handlers.GameHandler
}

func NewGameModule(h *handlers.GameHandler) *GameModule {
	return &GameModule{Handler: h}
}

func (m *GameModule) Register(rg *gin.RouterGroup) {
	game := rg.Group("/game", middleware.RequireMember())
	game.GET("/rank", m.Handler.Rank)

	baseball := game.Group("/baseball")
	{
		baseball.GET("/game-info", m.Handler.Info)
		baseball.GET("/is-already-played", m.Handler.AlreadyPlayed)
		baseball.POST("/start", m.Handler.Start)
		baseball.POST("/guess", m.Handler.Guess)
		baseball.GET("/result", m.Handler.Result)
	}
}
