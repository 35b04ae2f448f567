package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
)

func TestBaseballGameFlow(t *testing.T) {
	e := newTestEnv(t)
	player := e.store.Members().Seed(&entity.Member{LoginID: "player", NickName: "player", Point: 100, Jobs: []entity.JobType{entity.JobMember}})
	games := application.NewGameService(fakes.NewGames(), e.store.Members(), e.store.PointLogs(), e.files, fakes.Tx{}, nil)
	games.Secret = func() (string, error) { return "1234", nil }
	h := NewGameHandler(games, nil)

	g := e.router.Group("/game", as(player))
	g.GET("/rank", h.Rank)
	g.GET("/baseball/game-info", h.Info)
	g.GET("/baseball/is-already-played", h.AlreadyPlayed)
	g.POST("/baseball/start", h.Start)
	g.POST("/baseball/guess", h.Guess)
	g.GET("/baseball/result", h.Result)

	w := e.do(t, http.MethodGet, "/game/baseball/game-info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, entity.BaseballMaxGuesses, gjson.Get(w.Body.String(), "data.tryCount").Int())

	w = e.do(t, http.MethodGet, "/game/baseball/result", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "GAME_NOT_STARTED", gjson.Get(w.Body.String(), "error.code").String())

	w = e.do(t, http.MethodPost, "/game/baseball/start", gin.H{"bettingPoint": 45})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 90, gjson.Get(w.Body.String(), "data.earnablePoint").Int())

	w = e.do(t, http.MethodGet, "/game/baseball/is-already-played", nil)
	assert.True(t, gjson.Get(w.Body.String(), "data").Bool())

	w = e.do(t, http.MethodPost, "/game/baseball/guess", gin.H{"guessNumber": "12"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(t, http.MethodPost, "/game/baseball/guess", gin.H{"guessNumber": "1123"})
	assert.Equal(t, "GAME_INVALID_GUESS", gjson.Get(w.Body.String(), "error.code").String())

	w = e.do(t, http.MethodPost, "/game/baseball/guess", gin.H{"guessNumber": "1243"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Len(t, gjson.Get(body, "data.results").Array(), entity.BaseballMaxGuesses)
	assert.EqualValues(t, 2, gjson.Get(body, "data.results.0.strike").Int())
	assert.EqualValues(t, 2, gjson.Get(body, "data.results.0.ball").Int())
	assert.Equal(t, gjson.Null, gjson.Get(body, "data.results.1").Type)
	assert.EqualValues(t, 80, gjson.Get(body, "data.earnablePoint").Int())

	w = e.do(t, http.MethodPost, "/game/baseball/guess", gin.H{"guessNumber": "1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 80, gjson.Get(w.Body.String(), "data.earnablePoint").Int())

	w = e.do(t, http.MethodPost, "/game/baseball/start", gin.H{"bettingPoint": 10})
	assert.Equal(t, "GAME_ALREADY_PLAYED", gjson.Get(w.Body.String(), "error.code").String())

	w = e.do(t, http.MethodGet, "/game/rank", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = w.Body.String()
	assert.EqualValues(t, 1, gjson.Get(body, "data.0.rank").Int())
	assert.Equal(t, "player", gjson.Get(body, "data.0.nickname").String())
	assert.EqualValues(t, 35, gjson.Get(body, "data.0.todayEarnedPoint").Int())
	assert.EqualValues(t, player.ID, gjson.Get(body, "data.0.memberId").Int())

	m, err := e.store.Members().GetByID(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Equal(t, 135, m.Point)
}
