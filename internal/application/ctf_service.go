package application

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

type CtfService struct {
	Contests repo.CtfContestRepository
}

func NewCtfService(contests repo.CtfContestRepository) *CtfService {
	return &CtfService{Contests: contests}
}

func (s *CtfService) Create(ctx context.Context, creatorID int64, name, description string) (*entity.CtfContest, error) {
	c := &entity.CtfContest{Name: name, Description: description, CreatorID: creatorID}
	if err := s.Contests.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CtfService) Update(ctx context.Context, id int64, name, description string, joinable bool) (*entity.CtfContest, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.Description = description
	c.IsJoinable = joinable
	if err := s.Contests.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CtfService) Open(ctx context.Context, id int64) error {
	return s.setJoinable(ctx, id, true)
}

func (s *CtfService) Close(ctx context.Context, id int64) error {
	return s.setJoinable(ctx, id, false)
}

func (s *CtfService) List(ctx context.Context, page repo.PageRequest) ([]entity.CtfContest, int64, error) {
	return s.Contests.List(ctx, page)
}

func (s *CtfService) setJoinable(ctx context.Context, id int64, joinable bool) error {
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	c.IsJoinable = joinable
	return s.Contests.Update(ctx, c)
}

func (s *CtfService) get(ctx context.Context, id int64) (*entity.CtfContest, error) {
	c, err := s.Contests.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperror.CtfContestNotFound, "contestId", id)
	}
	return c, nil
}
