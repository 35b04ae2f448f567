package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

const (
	baseballBetDetail = "baseball bet"
	baseballWinDetail = "baseball win"
)

// GameService runs the daily baseball game. Each member plays once a day, betting
// point that a win pays back with a bonus shrinking on every guess.
type GameService struct {
	Games   repo.GameStore
	Members repo.MemberRepository
	Logs    repo.PointLogRepository
	Files   *FileService
	Tx      repo.Transactor
	Logger  *logrus.Logger
	Clock   func() time.Time
	Secret  func() (string, error)
}

func NewGameService(games repo.GameStore, members repo.MemberRepository, logs repo.PointLogRepository, files *FileService, tx repo.Transactor, logger *logrus.Logger) *GameService {
	return &GameService{
		Games:   games,
		Members: members,
		Logs:    logs,
		Files:   files,
		Tx:      tx,
		Logger:  logger,
		Secret:  func() (string, error) { return helpers.GenDistinctDigits(entity.BaseballDigits) },
	}
}

type BaseballRules struct {
	GuessNumberLength int
	TryCount          int
	MinBettingPoint   int
	MaxBettingPoint   int
	Payout            int
}

// GameRank is one row of the day's earned point ranking.
type GameRank struct {
	Rank             int
	Member           *entity.Member
	TodayEarnedPoint int
	ProfileImageURL  string
}

func (s *GameService) Rules() BaseballRules {
	return BaseballRules{
		GuessNumberLength: entity.BaseballDigits,
		TryCount:          entity.BaseballMaxGuesses,
		MinBettingPoint:   entity.BaseballMinBet,
		MaxBettingPoint:   entity.BaseballMaxBet,
		Payout:            entity.BaseballPayout,
	}
}

func (s *GameService) day() string {
	return nowFrom(s.Clock).In(time.Local).Format("20060102")
}

// StartBaseball charges the bet and opens today's game. It returns the earnable point.
func (s *GameService) StartBaseball(ctx context.Context, memberID int64, bet int) (int, error) {
	if bet < entity.BaseballMinBet || bet > entity.BaseballMaxBet {
		return 0, apperror.New(bet, "bettingPoint", apperror.GameInvalidBetting)
	}
	secret, err := s.Secret()
	if err != nil {
		return 0, err
	}
	day := s.day()
	g := &entity.BaseballGame{MemberID: memberID, Secret: secret, BettingPoint: bet}
	created, err := s.Games.CreateBaseball(ctx, day, g)
	if err != nil {
		return 0, err
	}
	if !created {
		return 0, apperror.New(memberID, "memberId", apperror.GameAlreadyPlayed)
	}
	err = runTx(ctx, s.Tx, func(ctx context.Context) error {
		if ok, err := s.Members.AddPoint(ctx, memberID, -bet); err != nil {
			return err
		} else if !ok {
			return apperror.New(bet, "bettingPoint", apperror.PointNotEnough)
		}
		return s.Logs.Create(ctx, &entity.PointLog{MemberID: memberID, Point: -bet, Detail: baseballBetDetail, IsSpent: true})
	})
	if err != nil {
		// give the day back when the bet was not charged
		if derr := s.Games.DeleteBaseball(ctx, day, memberID); derr != nil && s.Logger != nil {
			s.Logger.WithError(derr).WithField("member_id", memberID).Error("drop uncharged baseball game failed")
		}
		return 0, err
	}
	return g.EarnablePoint(), nil
}

// GuessBaseball scores number in today's game and pays out once the game is won.
func (s *GameService) GuessBaseball(ctx context.Context, memberID int64, number string) (*entity.BaseballGame, error) {
	if !entity.ValidBaseballNumber(number) {
		return nil, apperror.New(number, "guessNumber", apperror.GameInvalidGuess)
	}
	day := s.day()
	g, err := s.Games.UpdateBaseball(ctx, day, memberID, func(g *entity.BaseballGame) error {
		if g.Finished {
			return apperror.New(number, "guessNumber", apperror.GameFinished)
		}
		g.Play(number)
		return nil
	})
	if err != nil {
		return nil, notFound(err, apperror.GameNotStarted, "memberId", memberID)
	}
	if g.Finished {
		if err := s.settle(ctx, day, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// settle runs once per game: only the guess that finished it gets here.
func (s *GameService) settle(ctx context.Context, day string, g *entity.BaseballGame) error {
	if g.Won && g.Reward > 0 {
		err := runTx(ctx, s.Tx, func(ctx context.Context) error {
			if ok, err := s.Members.AddPoint(ctx, g.MemberID, g.Reward); err != nil {
				return err
			} else if !ok {
				return apperror.New(g.MemberID, "memberId", apperror.MemberNotFound)
			}
			return s.Logs.Create(ctx, &entity.PointLog{MemberID: g.MemberID, Point: g.Reward, Detail: baseballWinDetail})
		})
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("member_id", g.MemberID).WithField("reward", g.Reward).Error("pay baseball reward failed")
			}
			return err
		}
	}
	return s.Games.AddEarned(ctx, day, g.MemberID, g.Profit())
}

func (s *GameService) BaseballResult(ctx context.Context, memberID int64) (*entity.BaseballGame, error) {
	g, err := s.Games.GetBaseball(ctx, s.day(), memberID)
	if err != nil {
		return nil, notFound(err, apperror.GameNotStarted, "memberId", memberID)
	}
	return g, nil
}

// AlreadyPlayed reports whether the member has started today's game.
func (s *GameService) AlreadyPlayed(ctx context.Context, memberID int64) (bool, error) {
	_, err := s.Games.GetBaseball(ctx, s.day(), memberID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Rank lists today's top earners. Members deleted since playing are skipped.
func (s *GameService) Rank(ctx context.Context) ([]GameRank, error) {
	scores, err := s.Games.TopEarned(ctx, s.day(), entity.GameRankSize)
	if err != nil {
		return nil, err
	}
	out := make([]GameRank, 0, len(scores))
	for _, sc := range scores {
		m, err := s.Members.GetByID(ctx, sc.MemberID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		r := GameRank{Rank: len(out) + 1, Member: m, TodayEarnedPoint: sc.Point}
		if s.Files != nil {
			r.ProfileImageURL = s.Files.ThumbnailURL(m.ThumbnailPath)
		}
		out = append(out, r)
	}
	return out, nil
}
