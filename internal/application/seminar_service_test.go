package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

func newSeminars(f *fixture) *SeminarService {
	s := NewSeminarService(f.store.Seminars(), f.members, fakesTx(), "KEEPER", nil)
	s.Clock = f.clock
	return s
}

func TestSeminarAttend(t *testing.T) {
	f := newFixture(t)
	starter := f.member("starter", 0)
	early := f.member("early", 0)
	late := f.member("late", 0)
	s := newSeminars(f)
	ctx := context.Background()

	sem, err := s.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", sem.Name)

	_, err = s.Attend(ctx, early.ID, sem.ID, "0000")
	assert.True(t, apperror.HasCode(err, apperror.SeminarNotStarted))

	_, err = s.Start(ctx, starter.ID, sem.ID, f.now.Add(-time.Minute), f.now.Add(time.Hour))
	assert.True(t, apperror.HasCode(err, apperror.SeminarInvalidTime))
	_, err = s.Start(ctx, starter.ID, sem.ID, f.now.Add(10*time.Minute), f.now.Add(5*time.Minute))
	assert.True(t, apperror.HasCode(err, apperror.SeminarInvalidTime))

	sem, err = s.Start(ctx, starter.ID, sem.ID, f.now.Add(10*time.Minute), f.now.Add(30*time.Minute))
	require.NoError(t, err)
	code := *sem.AttendanceCode
	assert.Len(t, code, 4)

	avail, err := s.Available(ctx)
	require.NoError(t, err)
	assert.Equal(t, sem.ID, avail.ID)

	_, err = s.Attend(ctx, early.ID, sem.ID, code+"x")
	assert.True(t, apperror.HasCode(err, apperror.SeminarAttendanceCodeMismatch))

	a, err := s.Attend(ctx, early.ID, sem.ID, code)
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceAttend, a.Status)
	_, err = s.Attend(ctx, early.ID, sem.ID, code)
	assert.True(t, apperror.HasCode(err, apperror.SeminarAlreadyAttended))

	f.now = f.now.Add(20 * time.Minute)
	a, err = s.Attend(ctx, late.ID, sem.ID, code)
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceLateness, a.Status)

	f.now = f.now.Add(time.Hour)
	_, err = s.Attend(ctx, starter.ID, sem.ID, code)
	assert.True(t, apperror.HasCode(err, apperror.SeminarAttendanceClosed))

	m, _ := f.members.GetByID(ctx, early.ID)
	assert.Equal(t, 1, m.TotalAttendance)
}

func TestSeminarCalendar(t *testing.T) {
	f := newFixture(t)
	s := newSeminars(f)
	ctx := context.Background()
	sem, err := s.Create(ctx)
	require.NoError(t, err)

	cal, err := s.Calendar(ctx)
	require.NoError(t, err)
	assert.Contains(t, cal, "BEGIN:VCALENDAR")
	assert.Contains(t, cal, "BEGIN:VEVENT")
	assert.Contains(t, cal, "KEEPER seminar "+sem.Name)
	assert.Contains(t, cal, "20260302T190000Z")

	day, err := s.ListByDate(ctx, f.now)
	require.NoError(t, err)
	assert.Len(t, day, 1)
	none, err := s.ListByDate(ctx, f.now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAttendanceExcuseAndStatus(t *testing.T) {
	f := newFixture(t)
	starter := f.member("starter", 0)
	punctual := f.member("punctual", 0)
	late := f.member("late", 0)
	absent := f.member("absent", 0)
	s := newSeminars(f)
	ctx := context.Background()

	sem, err := s.Create(ctx)
	require.NoError(t, err)
	sem, err = s.Start(ctx, starter.ID, sem.ID, f.now.Add(10*time.Minute), f.now.Add(30*time.Minute))
	require.NoError(t, err)
	_, err = s.Attend(ctx, punctual.ID, sem.ID, *sem.AttendanceCode)
	require.NoError(t, err)
	f.now = f.now.Add(20 * time.Minute)
	_, err = s.Attend(ctx, late.ID, sem.ID, *sem.AttendanceCode)
	require.NoError(t, err)

	err = s.SubmitExcuse(ctx, punctual.ID, sem.ID, "nothing to excuse")
	assert.True(t, apperror.HasCode(err, apperror.SeminarExcuseNotAllowed))
	err = s.SubmitExcuse(ctx, absent.ID, sem.ID, "sick")
	assert.True(t, apperror.HasCode(err, apperror.SeminarAttendanceNotFound))
	require.NoError(t, s.SubmitExcuse(ctx, late.ID, sem.ID, "bus was late"))
	require.NoError(t, s.SubmitExcuse(ctx, late.ID, sem.ID, "bus broke down"))

	a, err := s.SetAttendanceStatus(ctx, sem.ID, absent.ID, entity.AttendanceAbsence)
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceAbsence, a.Status)
	require.NoError(t, s.SubmitExcuse(ctx, absent.ID, sem.ID, "sick"))

	_, err = s.SetAttendanceStatus(ctx, sem.ID, punctual.ID, entity.AttendanceStatus("EXCUSED"))
	assert.True(t, apperror.HasCode(err, apperror.SeminarInvalidStatus))
	_, err = s.SetAttendanceStatus(ctx, sem.ID, punctual.ID, entity.AttendanceAbsence)
	require.NoError(t, err)
	_, err = s.SetAttendanceStatus(ctx, sem.ID, late.ID, entity.AttendanceAttend)
	require.NoError(t, err)

	list, err := s.ListAttendances(ctx, sem.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	byName := map[string]entity.SeminarAttendance{}
	for _, a := range list {
		byName[a.MemberName] = a
	}
	require.NotNil(t, byName["late"].Excuse)
	assert.Equal(t, "bus broke down", *byName["late"].Excuse)
	assert.Equal(t, entity.AttendanceAttend, byName["late"].Status)
	require.NotNil(t, byName["absent"].Excuse)
	assert.Nil(t, byName["punctual"].Excuse)

	for member, want := range map[*entity.Member]int{punctual: 0, late: 1, absent: 0} {
		m, _ := f.members.GetByID(ctx, member.ID)
		assert.Equal(t, want, m.TotalAttendance, m.LoginID)
	}

	_, err = s.ListAttendances(ctx, 999)
	assert.True(t, apperror.HasCode(err, apperror.SeminarNotFound))
}
