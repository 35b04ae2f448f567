package fakes

import (
	"context"
	"sort"
	"time"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type SeminarRepository struct{ s *Store }

func (s *Store) Seminars() *SeminarRepository { return &SeminarRepository{s} }

func (r *SeminarRepository) Create(_ context.Context, sem *entity.Seminar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sem.ID = r.s.next()
	sem.RegisterTime = now()
	cp := *sem
	r.s.seminars[sem.ID] = &cp
	return nil
}

func (r *SeminarRepository) GetByID(_ context.Context, id int64) (*entity.Seminar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sem, ok := r.s.seminars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *sem
	return &cp, nil
}

func (r *SeminarRepository) Update(_ context.Context, sem *entity.Seminar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.seminars[sem.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *sem
	r.s.seminars[sem.ID] = &cp
	return nil
}

func (r *SeminarRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.seminars[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.seminars, id)
	return nil
}

func (r *SeminarRepository) collect(match func(*entity.Seminar) bool) []entity.Seminar {
	var out []entity.Seminar
	for _, id := range sortedIDs(r.s.seminars) {
		if sem := r.s.seminars[id]; match(sem) {
			out = append(out, *sem)
		}
	}
	return out
}

func (r *SeminarRepository) List(_ context.Context) ([]entity.Seminar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.collect(func(*entity.Seminar) bool { return true }), nil
}

func (r *SeminarRepository) ListBetween(_ context.Context, from, to time.Time) ([]entity.Seminar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.collect(func(sem *entity.Seminar) bool {
		return !sem.OpenTime.Before(from) && sem.OpenTime.Before(to)
	}), nil
}

func (r *SeminarRepository) FindAvailable(_ context.Context, at time.Time) (*entity.Seminar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	open := r.collect(func(sem *entity.Seminar) bool {
		return sem.Started() && !at.After(*sem.LatenessCloseTime)
	})
	if len(open) == 0 {
		return nil, repository.ErrNotFound
	}
	last := open[len(open)-1]
	return &last, nil
}

func (r *SeminarRepository) CreateAttendance(_ context.Context, a *entity.SeminarAttendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := pair{a.SeminarID, a.MemberID}
	if _, ok := r.s.attendances[k]; ok {
		return dup("seminar_attendance_unique")
	}
	a.ID = r.s.next()
	cp := *a
	r.s.attendances[k] = &cp
	return nil
}

func (r *SeminarRepository) ExistsAttendance(_ context.Context, seminarID, memberID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.attendances[pair{seminarID, memberID}]
	return ok, nil
}

func (r *SeminarRepository) attendanceView(a *entity.SeminarAttendance) entity.SeminarAttendance {
	v := *a
	if m, ok := r.s.members[a.MemberID]; ok {
		v.MemberName = m.RealName
	}
	if a.Excuse != nil {
		e := *a.Excuse
		v.Excuse = &e
	}
	return v
}

func (r *SeminarRepository) GetAttendance(_ context.Context, seminarID, memberID int64) (*entity.SeminarAttendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attendances[pair{seminarID, memberID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.attendanceView(a)
	return &v, nil
}

func (r *SeminarRepository) ListAttendances(_ context.Context, seminarID int64) ([]entity.SeminarAttendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.SeminarAttendance
	for k, a := range r.s.attendances {
		if k[0] == seminarID {
			out = append(out, r.attendanceView(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SeminarRepository) byAttendanceID(id int64) *entity.SeminarAttendance {
	for _, a := range r.s.attendances {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (r *SeminarRepository) UpdateAttendanceStatus(_ context.Context, attendanceID int64, status entity.AttendanceStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := r.byAttendanceID(attendanceID)
	if a == nil {
		return repository.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *SeminarRepository) SaveExcuse(_ context.Context, attendanceID int64, excuse string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := r.byAttendanceID(attendanceID)
	if a == nil {
		return repository.ErrNotFound
	}
	a.Excuse = &excuse
	return nil
}

var _ repository.SeminarRepository = (*SeminarRepository)(nil)
