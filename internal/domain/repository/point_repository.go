package repository

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

type PointLogRepository interface {
	Create(ctx context.Context, l *entity.PointLog) error
	ListByMember(ctx context.Context, memberID int64, page PageRequest) ([]entity.PointLog, int64, error)
}

type MeritRepository interface {
	CreateType(ctx context.Context, t *entity.MeritType) error
	GetType(ctx context.Context, id int64) (*entity.MeritType, error)
	ListTypes(ctx context.Context) ([]entity.MeritType, error)
	CreateLog(ctx context.Context, l *entity.MeritLog) error
	ListLogs(ctx context.Context, page PageRequest) ([]entity.MeritLog, int64, error)
	ListLogsByAwarder(ctx context.Context, awarderID int64, page PageRequest) ([]entity.MeritLog, int64, error)
	AllLogs(ctx context.Context) ([]entity.MeritLog, error)
}
