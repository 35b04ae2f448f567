package fakes

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type StudyRepository struct{ s *Store }

func (s *Store) Studies() *StudyRepository { return &StudyRepository{s} }

func (r *StudyRepository) Create(_ context.Context, st *entity.Study) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st.ID = r.s.next()
	st.RegisterTime = now()
	cp := *st
	r.s.studies[st.ID] = &cp
	return nil
}

func (r *StudyRepository) GetByID(_ context.Context, id int64) (*entity.Study, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.studies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *st
	if st.ThumbnailID != nil {
		if t, ok := r.s.thumbnails[*st.ThumbnailID]; ok {
			cp.ThumbnailPath = t.Path
		}
	}
	return &cp, nil
}

func (r *StudyRepository) Update(_ context.Context, st *entity.Study) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.studies[st.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *st
	r.s.studies[st.ID] = &cp
	return nil
}

func (r *StudyRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.studies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.studies, id)
	for k := range r.s.studyMember {
		if k[0] == id {
			delete(r.s.studyMember, k)
		}
	}
	return nil
}

func (r *StudyRepository) List(_ context.Context, year, season int) ([]entity.Study, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Study
	for _, id := range sortedIDs(r.s.studies) {
		if st := r.s.studies[id]; st.Year == year && st.Season == season {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (r *StudyRepository) AddMember(_ context.Context, studyID, memberID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := pair{studyID, memberID}
	if r.s.studyMember[k] {
		return dup("study_has_member_pkey")
	}
	r.s.studyMember[k] = true
	return nil
}

func (r *StudyRepository) RemoveMember(_ context.Context, studyID, memberID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := pair{studyID, memberID}
	if !r.s.studyMember[k] {
		return repository.ErrNotFound
	}
	delete(r.s.studyMember, k)
	return nil
}

func (r *StudyRepository) ListMembers(_ context.Context, studyID int64) ([]entity.StudyMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.StudyMember
	for _, id := range sortedIDs(r.s.members) {
		if r.s.studyMember[pair{studyID, id}] {
			out = append(out, entity.StudyMember{MemberID: id, RealName: r.s.members[id].RealName})
		}
	}
	return out, nil
}

var _ repository.StudyRepository = (*StudyRepository)(nil)
