package repository

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

type CtfContestRepository interface {
	Create(ctx context.Context, c *entity.CtfContest) error
	GetByID(ctx context.Context, id int64) (*entity.CtfContest, error)
	Update(ctx context.Context, c *entity.CtfContest) error
	List(ctx context.Context, page PageRequest) ([]entity.CtfContest, int64, error)
}
