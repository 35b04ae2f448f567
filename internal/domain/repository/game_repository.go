package repository

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

// GameStore keeps each day's games and earned points. day is formatted yyyyMMdd.
type GameStore interface {
	// CreateBaseball stores g unless the member already has a game that day.
	CreateBaseball(ctx context.Context, day string, g *entity.BaseballGame) (bool, error)
	GetBaseball(ctx context.Context, day string, memberID int64) (*entity.BaseballGame, error)
	// UpdateBaseball applies fn to the stored game atomically. An error from fn
	// leaves the game untouched and is returned as is.
	UpdateBaseball(ctx context.Context, day string, memberID int64, fn func(g *entity.BaseballGame) error) (*entity.BaseballGame, error)
	DeleteBaseball(ctx context.Context, day string, memberID int64) error
	AddEarned(ctx context.Context, day string, memberID int64, point int) error
	// TopEarned lists the n highest earners of the day, highest first.
	TopEarned(ctx context.Context, day string, n int) ([]entity.GameScore, error)
}
