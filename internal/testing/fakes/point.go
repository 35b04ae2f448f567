package fakes

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type PointLogRepository struct{ s *Store }

func (s *Store) PointLogs() *PointLogRepository { return &PointLogRepository{s} }

func (r *PointLogRepository) Create(_ context.Context, l *entity.PointLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.next()
	l.Time = now()
	r.s.pointLogs = append(r.s.pointLogs, *l)
	return nil
}

func (r *PointLogRepository) ListByMember(_ context.Context, memberID int64, p repository.PageRequest) ([]entity.PointLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.PointLog
	for i := len(r.s.pointLogs) - 1; i >= 0; i-- {
		if l := r.s.pointLogs[i]; l.MemberID == memberID {
			out = append(out, l)
		}
	}
	items, total := page(out, p)
	return items, total, nil
}

type MeritRepository struct{ s *Store }

func (s *Store) Merits() *MeritRepository { return &MeritRepository{s} }

func (r *MeritRepository) CreateType(_ context.Context, t *entity.MeritType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.next()
	cp := *t
	r.s.meritTypes[t.ID] = &cp
	return nil
}

func (r *MeritRepository) GetType(_ context.Context, id int64) (*entity.MeritType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.meritTypes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MeritRepository) ListTypes(_ context.Context) ([]entity.MeritType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.MeritType, 0, len(r.s.meritTypes))
	for _, id := range sortedIDs(r.s.meritTypes) {
		out = append(out, *r.s.meritTypes[id])
	}
	return out, nil
}

func (r *MeritRepository) CreateLog(_ context.Context, l *entity.MeritLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.next()
	l.Time = now()
	r.s.meritLogs = append(r.s.meritLogs, *l)
	return nil
}

func (r *MeritRepository) named(l entity.MeritLog) entity.MeritLog {
	if m, ok := r.s.members[l.AwarderID]; ok {
		l.AwarderName = m.RealName
	}
	if m, ok := r.s.members[l.GiverID]; ok {
		l.GiverName = m.RealName
	}
	return l
}

func (r *MeritRepository) filter(match func(entity.MeritLog) bool) []entity.MeritLog {
	var out []entity.MeritLog
	for i := len(r.s.meritLogs) - 1; i >= 0; i-- {
		if l := r.s.meritLogs[i]; match(l) {
			out = append(out, r.named(l))
		}
	}
	return out
}

func (r *MeritRepository) ListLogs(_ context.Context, p repository.PageRequest) ([]entity.MeritLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items, total := page(r.filter(func(entity.MeritLog) bool { return true }), p)
	return items, total, nil
}

func (r *MeritRepository) ListLogsByAwarder(_ context.Context, awarderID int64, p repository.PageRequest) ([]entity.MeritLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items, total := page(r.filter(func(l entity.MeritLog) bool { return l.AwarderID == awarderID }), p)
	return items, total, nil
}

func (r *MeritRepository) AllLogs(_ context.Context) ([]entity.MeritLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(entity.MeritLog) bool { return true }), nil
}

var (
	_ repository.PointLogRepository = (*PointLogRepository)(nil)
	_ repository.MeritRepository    = (*MeritRepository)(nil)
)
