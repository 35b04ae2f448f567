package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

func newGameService(f *fixture) *GameService {
	s := NewGameService(fakes.NewGames(), f.members, f.store.PointLogs(), f.files, fakesTx(), nil)
	s.Clock = f.clock
	s.Secret = func() (string, error) { return "1234", nil }
	return s
}

func TestBaseballStartChargesBet(t *testing.T) {
	f := newFixture(t)
	m := f.member("player", 100)
	s := newGameService(f)
	ctx := context.Background()

	played, err := s.AlreadyPlayed(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, played)

	earnable, err := s.StartBaseball(ctx, m.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, 180, earnable)

	got, _ := f.members.GetByID(ctx, m.ID)
	assert.Equal(t, 10, got.Point)
	logs, total, err := f.store.PointLogs().ListByMember(ctx, m.ID, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, -90, logs[0].Point)
	assert.True(t, logs[0].IsSpent)

	played, err = s.AlreadyPlayed(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, played)

	_, err = s.StartBaseball(ctx, m.ID, 1)
	assert.True(t, apperror.HasCode(err, apperror.GameAlreadyPlayed))
	got, _ = f.members.GetByID(ctx, m.ID)
	assert.Equal(t, 10, got.Point)
}

func TestBaseballStartRejects(t *testing.T) {
	f := newFixture(t)
	m := f.member("player", 10)
	s := newGameService(f)
	ctx := context.Background()

	_, err := s.StartBaseball(ctx, m.ID, 0)
	assert.True(t, apperror.HasCode(err, apperror.GameInvalidBetting))
	_, err = s.StartBaseball(ctx, m.ID, entity.BaseballMaxBet+1)
	assert.True(t, apperror.HasCode(err, apperror.GameInvalidBetting))

	_, err = s.StartBaseball(ctx, m.ID, 50)
	assert.True(t, apperror.HasCode(err, apperror.PointNotEnough))
	played, err := s.AlreadyPlayed(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, played, "an uncharged game must not use up the day")

	_, err = s.GuessBaseball(ctx, m.ID, "1234")
	assert.True(t, apperror.HasCode(err, apperror.GameNotStarted))
	_, err = s.BaseballResult(ctx, m.ID)
	assert.True(t, apperror.HasCode(err, apperror.GameNotStarted))

	_, err = s.StartBaseball(ctx, m.ID, 10)
	require.NoError(t, err)
	_, err = s.GuessBaseball(ctx, m.ID, "1123")
	assert.True(t, apperror.HasCode(err, apperror.GameInvalidGuess))
	_, err = s.GuessBaseball(ctx, m.ID, "12a4")
	assert.True(t, apperror.HasCode(err, apperror.GameInvalidGuess))
}

func TestBaseballWinPaysRewardAndRanks(t *testing.T) {
	f := newFixture(t)
	m := f.member("winner", 100)
	other := f.member("loser", 100)
	s := newGameService(f)
	ctx := context.Background()

	_, err := s.StartBaseball(ctx, m.ID, 90)
	require.NoError(t, err)

	g, err := s.GuessBaseball(ctx, m.ID, "5678")
	require.NoError(t, err)
	assert.Equal(t, entity.BaseballGuess{GuessNumber: "5678"}, g.Guesses[0])
	g, err = s.GuessBaseball(ctx, m.ID, "4321")
	require.NoError(t, err)
	assert.Equal(t, 0, g.Guesses[1].Strike)
	assert.Equal(t, 4, g.Guesses[1].Ball)
	assert.Equal(t, 140, g.EarnablePoint())

	g, err = s.GuessBaseball(ctx, m.ID, "1234")
	require.NoError(t, err)
	assert.True(t, g.Finished)
	assert.True(t, g.Won)
	assert.Equal(t, 140, g.Reward)

	got, _ := f.members.GetByID(ctx, m.ID)
	assert.Equal(t, 150, got.Point)

	_, err = s.GuessBaseball(ctx, m.ID, "1234")
	assert.True(t, apperror.HasCode(err, apperror.GameFinished))

	res, err := s.BaseballResult(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, res.Guesses, 3)

	_, err = s.StartBaseball(ctx, other.ID, 20)
	require.NoError(t, err)
	for i := 0; i < entity.BaseballMaxGuesses; i++ {
		_, err = s.GuessBaseball(ctx, other.ID, "5678")
		require.NoError(t, err)
	}

	ranks, err := s.Rank(ctx)
	require.NoError(t, err)
	require.Len(t, ranks, 2)
	assert.Equal(t, 1, ranks[0].Rank)
	assert.Equal(t, m.ID, ranks[0].Member.ID)
	assert.Equal(t, 50, ranks[0].TodayEarnedPoint)
	assert.Equal(t, "/img/default.png", ranks[0].ProfileImageURL)
	assert.Equal(t, 2, ranks[1].Rank)
	assert.Equal(t, -20, ranks[1].TodayEarnedPoint)
}

func TestBaseballLostAfterLastGuessKeepsBet(t *testing.T) {
	f := newFixture(t)
	m := f.member("player", 30)
	s := newGameService(f)
	ctx := context.Background()

	_, err := s.StartBaseball(ctx, m.ID, 30)
	require.NoError(t, err)
	var g *entity.BaseballGame
	for i := 0; i < entity.BaseballMaxGuesses; i++ {
		g, err = s.GuessBaseball(ctx, m.ID, "9876")
		require.NoError(t, err)
	}
	assert.True(t, g.Finished)
	assert.False(t, g.Won)
	assert.Equal(t, 0, g.EarnablePoint())

	got, _ := f.members.GetByID(ctx, m.ID)
	assert.Equal(t, 0, got.Point)

	_, err = s.GuessBaseball(ctx, m.ID, "1234")
	assert.True(t, apperror.HasCode(err, apperror.GameFinished))
}

func TestConcurrentWinningGuessesPayOnce(t *testing.T) {
	f := newFixture(t)
	m := f.member("player", 100)
	s := newGameService(f)
	ctx := context.Background()

	_, err := s.StartBaseball(ctx, m.ID, 90)
	require.NoError(t, err)

	errs := make([]error, 5)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.GuessBaseball(ctx, m.ID, "1234")
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.True(t, apperror.HasCode(err, apperror.GameFinished))
	}
	assert.Equal(t, 1, won)

	got, _ := f.members.GetByID(ctx, m.ID)
	assert.Equal(t, 190, got.Point)
	ranks, err := s.Rank(ctx)
	require.NoError(t, err)
	require.Len(t, ranks, 1)
	assert.Equal(t, 90, ranks[0].TodayEarnedPoint)
}
