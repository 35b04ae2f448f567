package repository

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

type StudyRepository interface {
	Create(ctx context.Context, s *entity.Study) error
	GetByID(ctx context.Context, id int64) (*entity.Study, error)
	Update(ctx context.Context, s *entity.Study) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, year, season int) ([]entity.Study, error)
	AddMember(ctx context.Context, studyID, memberID int64) error
	RemoveMember(ctx context.Context, studyID, memberID int64) error
	ListMembers(ctx context.Context, studyID int64) ([]entity.StudyMember, error)
}
