package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

// gameTTL outlives the day a key belongs to.
const gameTTL = 48 * time.Hour

const maxWatchRetries = 5

var errGameContended = errors.New("baseball game: too many concurrent updates")

// GameStore keeps a member's baseball game as JSON and each day's earned points in a sorted set.
type GameStore struct {
	rdb *redis.Client
}

func NewGameStore(rdb *redis.Client) *GameStore {
	return &GameStore{rdb: rdb}
}

func baseballKey(day string, memberID int64) string {
	return "GAME_BASEBALL_" + day + "_" + strconv.FormatInt(memberID, 10)
}

func earnedKey(day string) string {
	return "GAME_EARNED_" + day
}

func (s *GameStore) CreateBaseball(ctx context.Context, day string, g *entity.BaseballGame) (bool, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, baseballKey(day, g.MemberID), b, gameTTL).Result()
}

func (s *GameStore) GetBaseball(ctx context.Context, day string, memberID int64) (*entity.BaseballGame, error) {
	g := &entity.BaseballGame{}
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, baseballKey(day, memberID), g)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNotFound
	}
	return g, nil
}

// UpdateBaseball retries when another request changed the game between read and write.
func (s *GameStore) UpdateBaseball(ctx context.Context, day string, memberID int64, fn func(g *entity.BaseballGame) error) (*entity.BaseballGame, error) {
	key := baseballKey(day, memberID)
	var out *entity.BaseballGame
	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		g := &entity.BaseballGame{}
		if err := json.Unmarshal(b, g); err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}
		next, err := json.Marshal(g)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, next, redis.KeepTTL)
			return nil
		})
		if err == nil {
			out = g
		}
		return err
	}
	for i := 0; i < maxWatchRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, errGameContended
}

func (s *GameStore) DeleteBaseball(ctx context.Context, day string, memberID int64) error {
	return helpers.RedisDel(ctx, s.rdb, baseballKey(day, memberID))
}

func (s *GameStore) AddEarned(ctx context.Context, day string, memberID int64, point int) error {
	key := earnedKey(day)
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZIncrBy(ctx, key, float64(point), strconv.FormatInt(memberID, 10))
		p.Expire(ctx, key, gameTTL)
		return nil
	})
	return err
}

func (s *GameStore) TopEarned(ctx context.Context, day string, n int) ([]entity.GameScore, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, earnedKey(day), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]entity.GameScore, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, entity.GameScore{MemberID: id, Point: int(z.Score)})
	}
	return out, nil
}

var _ repository.GameStore = (*GameStore)(nil)
