package repository

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

type ElectionRepository interface {
	Create(ctx context.Context, e *entity.Election) error
	GetByID(ctx context.Context, id int64) (*entity.Election, error)
	Update(ctx context.Context, e *entity.Election) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageRequest) ([]entity.Election, int64, error)

	CreateCandidate(ctx context.Context, c *entity.ElectionCandidate) error
	GetCandidate(ctx context.Context, electionID, candidateID int64) (*entity.ElectionCandidate, error)
	DeleteCandidate(ctx context.Context, candidateID int64) error
	ListCandidates(ctx context.Context, electionID int64) ([]entity.ElectionCandidate, error)
	IncrementVote(ctx context.Context, candidateID int64) error

	AddVoter(ctx context.Context, v *entity.ElectionVoter) error
	GetVoter(ctx context.Context, electionID, memberID int64) (*entity.ElectionVoter, error)
	// MarkVoted flips is_voted for a voter who has not voted yet. It reports
	// false when the voter is missing or already voted.
	MarkVoted(ctx context.Context, electionID, memberID int64) (bool, error)
}
