package fakes

import (
	"context"
	"sort"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type MemberRepository struct{ s *Store }

func (s *Store) Members() *MemberRepository { return &MemberRepository{s} }

// Seed stores m as is, assigning an id when m has none.
func (r *MemberRepository) Seed(m *entity.Member) *entity.Member {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == 0 {
		m.ID = r.s.next()
	} else if m.ID > r.s.seq {
		r.s.seq = m.ID
	}
	if m.RegisterTime.IsZero() {
		m.RegisterTime = now()
	}
	cp := *m
	r.s.members[m.ID] = &cp
	return m
}

func (r *MemberRepository) withThumbnail(m *entity.Member) *entity.Member {
	cp := *m
	cp.Jobs = append([]entity.JobType(nil), m.Jobs...)
	cp.ThumbnailPath = ""
	if m.ThumbnailID != nil {
		if t, ok := r.s.thumbnails[*m.ThumbnailID]; ok {
			cp.ThumbnailPath = t.Path
		}
	}
	return &cp
}

func (r *MemberRepository) Create(_ context.Context, m *entity.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.members {
		switch {
		case o.LoginID == m.LoginID:
			return dup("member_login_id_key")
		case o.EmailAddress == m.EmailAddress:
			return dup("member_email_address_key")
		case o.StudentID != nil && m.StudentID != nil && *o.StudentID == *m.StudentID:
			return dup("member_student_id_key")
		}
	}
	m.ID = r.s.next()
	m.RegisterTime = now()
	cp := *m
	cp.Jobs = nil
	r.s.members[m.ID] = &cp
	return nil
}

func (r *MemberRepository) GetByID(_ context.Context, id int64) (*entity.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.withThumbnail(m), nil
}

// GetByIDForUpdate does not lock; the fake store serializes single calls only.
func (r *MemberRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Member, error) {
	return r.GetByID(ctx, id)
}

func (r *MemberRepository) GetByLoginID(_ context.Context, loginID string) (*entity.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.members {
		if m.LoginID == loginID {
			return r.withThumbnail(m), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemberRepository) exists(match func(m *entity.Member) bool) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.members {
		if match(m) {
			return true
		}
	}
	return false
}

func (r *MemberRepository) ExistsByLoginID(_ context.Context, loginID string) (bool, error) {
	return r.exists(func(m *entity.Member) bool { return m.LoginID == loginID }), nil
}

func (r *MemberRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.exists(func(m *entity.Member) bool { return m.EmailAddress == email }), nil
}

func (r *MemberRepository) ExistsByStudentID(_ context.Context, studentID string) (bool, error) {
	return r.exists(func(m *entity.Member) bool { return m.StudentID != nil && *m.StudentID == studentID }), nil
}

func (r *MemberRepository) Update(_ context.Context, m *entity.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.members[m.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, o := range r.s.members {
		if id != m.ID && o.EmailAddress == m.EmailAddress {
			return dup("member_email_address_key")
		}
	}
	cur.EmailAddress = m.EmailAddress
	cur.NickName = m.NickName
	cur.ThumbnailID = m.ThumbnailID
	return nil
}

func (r *MemberRepository) AddPoint(_ context.Context, memberID int64, delta int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[memberID]
	if !ok || m.Point+delta < 0 {
		return false, nil
	}
	m.Point += delta
	return true, nil
}

func (r *MemberRepository) AddMerit(_ context.Context, memberID int64, merit, demerit int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[memberID]
	if !ok {
		return repository.ErrNotFound
	}
	m.Merit += merit
	m.Demerit += demerit
	return nil
}

func (r *MemberRepository) AddAttendance(_ context.Context, memberID int64, n int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[memberID]
	if !ok {
		return repository.ErrNotFound
	}
	m.TotalAttendance += n
	return nil
}

func (r *MemberRepository) AssignJob(_ context.Context, memberID int64, job entity.JobType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[memberID]
	if !ok || r.s.JobID(job) == 0 || m.HasJob(job) {
		return repository.ErrNotFound
	}
	m.Jobs = append(m.Jobs, job)
	return nil
}

func (r *MemberRepository) RemoveJob(_ context.Context, memberID int64, job entity.JobType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[memberID]
	if !ok {
		return nil
	}
	kept := m.Jobs[:0]
	for _, j := range m.Jobs {
		if j != job {
			kept = append(kept, j)
		}
	}
	m.Jobs = kept
	return nil
}

func (r *MemberRepository) GetJob(_ context.Context, jobID int64) (*entity.MemberJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[jobID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entity.MemberJob{ID: jobID, Name: j}, nil
}

func (r *MemberRepository) ListByPoint(_ context.Context, p repository.PageRequest) ([]entity.Member, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Member, 0, len(r.s.members))
	for _, id := range sortedIDs(r.s.members) {
		out = append(out, *r.withThumbnail(r.s.members[id]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Point > out[j].Point })
	items, total := page(out, p)
	return items, total, nil
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
