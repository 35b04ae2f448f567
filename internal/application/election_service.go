package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

type ElectionService struct {
	Elections repo.ElectionRepository
	Members   repo.MemberRepository
	Tx        repo.Transactor
	Logger    *logrus.Logger
}

func NewElectionService(elections repo.ElectionRepository, members repo.MemberRepository, tx repo.Transactor, logger *logrus.Logger) *ElectionService {
	return &ElectionService{Elections: elections, Members: members, Tx: tx, Logger: logger}
}

func (s *ElectionService) Create(ctx context.Context, memberID int64, name, description string, isAvailable bool) (*entity.Election, error) {
	e := &entity.Election{Name: name, Description: description, MemberID: memberID, IsAvailable: isAvailable}
	if err := s.Elections.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ElectionService) Get(ctx context.Context, id int64) (*entity.Election, error) {
	e, err := s.Elections.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperror.ElectionNotFound, "electionId", id)
	}
	return e, nil
}

func (s *ElectionService) Update(ctx context.Context, id int64, name, description string, isAvailable bool) (*entity.Election, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Name = name
	e.Description = description
	e.IsAvailable = isAvailable
	if err := s.Elections.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ElectionService) List(ctx context.Context, page repo.PageRequest) ([]entity.Election, int64, error) {
	return s.Elections.List(ctx, page)
}

// Delete refuses elections that are still open.
func (s *ElectionService) Delete(ctx context.Context, id int64) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if e.IsAvailable {
		return apperror.New(id, "electionId", apperror.ElectionCannotDelete)
	}
	return s.Elections.Delete(ctx, id)
}

func (s *ElectionService) Open(ctx context.Context, id int64) error {
	return s.setAvailable(ctx, id, true)
}

func (s *ElectionService) Close(ctx context.Context, id int64) error {
	return s.setAvailable(ctx, id, false)
}

func (s *ElectionService) setAvailable(ctx context.Context, id int64, available bool) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	e.IsAvailable = available
	return s.Elections.Update(ctx, e)
}

// RegisterCandidates enters every member for the given electable job.
func (s *ElectionService) RegisterCandidates(ctx context.Context, electionID int64, memberIDs []int64, description string, jobID int64) error {
	if _, err := s.Get(ctx, electionID); err != nil {
		return err
	}
	job, err := s.Members.GetJob(ctx, jobID)
	if err != nil {
		return notFound(err, apperror.MemberJobNotFound, "memberJobId", jobID)
	}
	if !job.Name.Electable() {
		return apperror.New(job.Name, "memberJobId", apperror.ElectionCandidateInvalidJob)
	}
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		for _, id := range memberIDs {
			if _, err := s.Members.GetByID(ctx, id); err != nil {
				return notFound(err, apperror.MemberNotFound, "memberIds", id)
			}
			c := &entity.ElectionCandidate{ElectionID: electionID, MemberID: id, MemberJobID: job.ID, Description: description}
			if err := s.Elections.CreateCandidate(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ElectionService) DeleteCandidate(ctx context.Context, electionID, candidateID int64) error {
	if _, err := s.Elections.GetCandidate(ctx, electionID, candidateID); err != nil {
		return notFound(err, apperror.ElectionCandidateNotFound, "candidateId", candidateID)
	}
	return s.Elections.DeleteCandidate(ctx, candidateID)
}

// RegisterVoters allows members to vote; members already registered are skipped.
func (s *ElectionService) RegisterVoters(ctx context.Context, electionID int64, memberIDs []int64) error {
	if _, err := s.Get(ctx, electionID); err != nil {
		return err
	}
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		for _, id := range memberIDs {
			if _, err := s.Members.GetByID(ctx, id); err != nil {
				return notFound(err, apperror.MemberNotFound, "memberIds", id)
			}
			err := s.Elections.AddVoter(ctx, &entity.ElectionVoter{ElectionID: electionID, MemberID: id})
			if err != nil && !errors.Is(err, repo.ErrDuplicate) {
				return err
			}
		}
		return nil
	})
}

func (s *ElectionService) ListCandidates(ctx context.Context, electionID int64) ([]entity.ElectionCandidate, error) {
	if _, err := s.Get(ctx, electionID); err != nil {
		return nil, err
	}
	return s.Elections.ListCandidates(ctx, electionID)
}

// Vote casts the member's single vote in an open election.
func (s *ElectionService) Vote(ctx context.Context, memberID, electionID, candidateID int64) error {
	e, err := s.Get(ctx, electionID)
	if err != nil {
		return err
	}
	if !e.IsAvailable {
		return apperror.New(electionID, "electionId", apperror.ElectionNotAvailable)
	}
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		v, err := s.Elections.GetVoter(ctx, electionID, memberID)
		if err != nil {
			return notFound(err, apperror.ElectionVoterNotFound, "memberId", memberID)
		}
		if v.IsVoted {
			return apperror.New(electionID, "electionId", apperror.ElectionAlreadyVoted)
		}
		if _, err := s.Elections.GetCandidate(ctx, electionID, candidateID); err != nil {
			return notFound(err, apperror.ElectionCandidateNotFound, "candidateId", candidateID)
		}
		if ok, err := s.Elections.MarkVoted(ctx, electionID, memberID); err != nil {
			return err
		} else if !ok {
			return apperror.New(electionID, "electionId", apperror.ElectionAlreadyVoted)
		}
		return s.Elections.IncrementVote(ctx, candidateID)
	})
}
