package fakes

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type CtfContestRepository struct{ s *Store }

func (s *Store) Contests() *CtfContestRepository { return &CtfContestRepository{s} }

func (r *CtfContestRepository) Create(_ context.Context, c *entity.CtfContest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.next()
	c.RegisterTime = now()
	cp := *c
	r.s.contests[c.ID] = &cp
	return nil
}

func (r *CtfContestRepository) view(c *entity.CtfContest) entity.CtfContest {
	cp := *c
	if m, ok := r.s.members[c.CreatorID]; ok {
		cp.CreatorName = m.RealName
	}
	return cp
}

func (r *CtfContestRepository) GetByID(_ context.Context, id int64) (*entity.CtfContest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.view(c)
	return &v, nil
}

func (r *CtfContestRepository) Update(_ context.Context, c *entity.CtfContest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contests[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.s.contests[c.ID] = &cp
	return nil
}

func (r *CtfContestRepository) List(_ context.Context, p repository.PageRequest) ([]entity.CtfContest, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.contests)
	out := make([]entity.CtfContest, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, r.view(r.s.contests[ids[i]]))
	}
	items, total := page(out, p)
	return items, total, nil
}

var _ repository.CtfContestRepository = (*CtfContestRepository)(nil)
