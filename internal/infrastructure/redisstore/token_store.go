package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

// RefreshTokenStore keeps refresh tokens under their own value with an empty payload.
type RefreshTokenStore struct {
	rdb *redis.Client
}

func NewRefreshTokenStore(rdb *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{rdb: rdb}
}

func (s *RefreshTokenStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, token, "", ttl).Err()
}

func (s *RefreshTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RefreshTokenStore) Delete(ctx context.Context, token string) error {
	return helpers.RedisDel(ctx, s.rdb, token)
}

// AuthCodeStore keeps email verification codes under EMAIL_AUTH_<email>.
type AuthCodeStore struct {
	rdb *redis.Client
}

func NewAuthCodeStore(rdb *redis.Client) *AuthCodeStore {
	return &AuthCodeStore{rdb: rdb}
}

func (s *AuthCodeStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, s.rdb, helpers.KeyEmailAuth(email), code, ttl)
}

func (s *AuthCodeStore) Get(ctx context.Context, email string) (string, bool, error) {
	var code string
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, helpers.KeyEmailAuth(email), &code)
	return code, ok, err
}

func (s *AuthCodeStore) Delete(ctx context.Context, email string) error {
	return helpers.RedisDel(ctx, s.rdb, helpers.KeyEmailAuth(email))
}

var (
	_ repository.TokenStore    = (*RefreshTokenStore)(nil)
	_ repository.AuthCodeStore = (*AuthCodeStore)(nil)
)
