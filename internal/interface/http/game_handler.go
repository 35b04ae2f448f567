package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

type GameHandler struct {
	Games  *application.GameService
	Logger *logrus.Logger
}

func NewGameHandler(games *application.GameService, logger *logrus.Logger) *GameHandler {
	return &GameHandler{Games: games, Logger: logger}
}

type baseballStartRequest struct {
	BettingPoint int `json:"bettingPoint" binding:"required,gt=0"`
}

type baseballGuessRequest struct {
	GuessNumber string `json:"guessNumber" binding:"required,len=4,numeric"`
}

// baseballResponse always carries one slot per allowed guess; unplayed slots are null.
type baseballResponse struct {
	Results       []*entity.BaseballGuess `json:"results"`
	EarnablePoint int                     `json:"earnablePoint"`
}

func toBaseball(g *entity.BaseballGame) baseballResponse {
	out := baseballResponse{Results: make([]*entity.BaseballGuess, entity.BaseballMaxGuesses), EarnablePoint: g.EarnablePoint()}
	for i := range g.Guesses {
		out.Results[i] = &g.Guesses[i]
	}
	return out
}

type gameRankResponse struct {
	Rank             int     `json:"rank"`
	NickName         string  `json:"nickname"`
	Generation       float64 `json:"generation"`
	TodayEarnedPoint int     `json:"todayEarnedPoint"`
	ProfileImageURL  string  `json:"profileImageUrl"`
	MemberID         int64   `json:"memberId"`
}

// Rank handles GET /api/game/rank
func (h *GameHandler) Rank(c *gin.Context) {
	ranks, err := h.Games.Rank(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]gameRankResponse, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, gameRankResponse{
			Rank:             r.Rank,
			NickName:         r.Member.NickName,
			Generation:       r.Member.Generation,
			TodayEarnedPoint: r.TodayEarnedPoint,
			ProfileImageURL:  r.ProfileImageURL,
			MemberID:         r.Member.ID,
		})
	}
	ok(c, out)
}

// Info handles GET /api/game/baseball/game-info
func (h *GameHandler) Info(c *gin.Context) {
	r := h.Games.Rules()
	ok(c, gin.H{
		"guessNumberLength": r.GuessNumberLength,
		"tryCount":          r.TryCount,
		"minBettingPoint":   r.MinBettingPoint,
		"maxBettingPoint":   r.MaxBettingPoint,
		"payout":            r.Payout,
	})
}

// AlreadyPlayed handles GET /api/game/baseball/is-already-played
func (h *GameHandler) AlreadyPlayed(c *gin.Context) {
	played, err := h.Games.AlreadyPlayed(c.Request.Context(), me(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, played)
}

// Start handles POST /api/game/baseball/start
func (h *GameHandler) Start(c *gin.Context) {
	var req baseballStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	earnable, err := h.Games.StartBaseball(c.Request.Context(), me(c), req.BettingPoint)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, baseballResponse{Results: []*entity.BaseballGuess{}, EarnablePoint: earnable})
}

// Guess handles POST /api/game/baseball/guess
func (h *GameHandler) Guess(c *gin.Context) {
	var req baseballGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	g, err := h.Games.GuessBaseball(c.Request.Context(), me(c), req.GuessNumber)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, toBaseball(g))
}

// Result handles GET /api/game/baseball/result
func (h *GameHandler) Result(c *gin.Context) {
	g, err := h.Games.BaseballResult(c.Request.Context(), me(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, toBaseball(g))
}
