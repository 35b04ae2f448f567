package fakes

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type ElectionRepository struct{ s *Store }

func (s *Store) Elections() *ElectionRepository { return &ElectionRepository{s} }

func (r *ElectionRepository) Create(_ context.Context, e *entity.Election) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.next()
	e.RegisterTime = now()
	cp := *e
	r.s.elections[e.ID] = &cp
	return nil
}

func (r *ElectionRepository) GetByID(_ context.Context, id int64) (*entity.Election, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.elections[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *ElectionRepository) Update(_ context.Context, e *entity.Election) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.elections[e.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *e
	r.s.elections[e.ID] = &cp
	return nil
}

func (r *ElectionRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.elections[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.elections, id)
	for cid, c := range r.s.candidates {
		if c.ElectionID == id {
			delete(r.s.candidates, cid)
		}
	}
	for k := range r.s.voters {
		if k[0] == id {
			delete(r.s.voters, k)
		}
	}
	return nil
}

func (r *ElectionRepository) List(_ context.Context, p repository.PageRequest) ([]entity.Election, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.elections)
	out := make([]entity.Election, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, *r.s.elections[ids[i]])
	}
	items, total := page(out, p)
	return items, total, nil
}

func (r *ElectionRepository) CreateCandidate(_ context.Context, c *entity.ElectionCandidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.next()
	c.RegisterTime = now()
	cp := *c
	r.s.candidates[c.ID] = &cp
	return nil
}

func (r *ElectionRepository) candidate(c *entity.ElectionCandidate) entity.ElectionCandidate {
	cp := *c
	if m, ok := r.s.members[c.MemberID]; ok {
		cp.MemberName = m.RealName
	}
	cp.JobName = r.s.jobs[c.MemberJobID]
	return cp
}

func (r *ElectionRepository) GetCandidate(_ context.Context, electionID, candidateID int64) (*entity.ElectionCandidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[candidateID]
	if !ok || c.ElectionID != electionID {
		return nil, repository.ErrNotFound
	}
	v := r.candidate(c)
	return &v, nil
}

func (r *ElectionRepository) DeleteCandidate(_ context.Context, candidateID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.candidates[candidateID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.candidates, candidateID)
	return nil
}

func (r *ElectionRepository) ListCandidates(_ context.Context, electionID int64) ([]entity.ElectionCandidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.ElectionCandidate
	for _, id := range sortedIDs(r.s.candidates) {
		if c := r.s.candidates[id]; c.ElectionID == electionID {
			out = append(out, r.candidate(c))
		}
	}
	return out, nil
}

func (r *ElectionRepository) IncrementVote(_ context.Context, candidateID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[candidateID]
	if !ok {
		return repository.ErrNotFound
	}
	c.VoteCount++
	return nil
}

func (r *ElectionRepository) AddVoter(_ context.Context, v *entity.ElectionVoter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := pair{v.ElectionID, v.MemberID}
	if _, ok := r.s.voters[k]; !ok {
		cp := *v
		r.s.voters[k] = &cp
	}
	return nil
}

func (r *ElectionRepository) GetVoter(_ context.Context, electionID, memberID int64) (*entity.ElectionVoter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.voters[pair{electionID, memberID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *ElectionRepository) MarkVoted(_ context.Context, electionID, memberID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.voters[pair{electionID, memberID}]
	if !ok || v.IsVoted {
		return false, nil
	}
	v.IsVoted = true
	return true, nil
}

var _ repository.ElectionRepository = (*ElectionRepository)(nil)
