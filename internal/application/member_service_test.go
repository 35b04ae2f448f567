package application

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

func newMembers(f *fixture) *MemberService {
	codes := NewAuthCodeSender(f.codes, f.queue, f.cfg, nil)
	return NewMemberService(f.members, fakesTx(), f.files, codes, nil)
}

func TestChangeEmail(t *testing.T) {
	f := newFixture(t)
	hash, _ := helpers.HashPassword("keeper1234")
	m := f.members.Seed(&entity.Member{LoginID: "keeper", EmailAddress: "old@keeper.or.kr", Password: hash})
	f.member("taken", 0)
	s := newMembers(f)
	ctx := context.Background()

	assert.True(t, apperror.HasCode(s.SendEmailChangeCode(ctx, "taken@keeper.or.kr", ""), apperror.MemberEmailDuplicate))
	require.NoError(t, s.SendEmailChangeCode(ctx, "new@keeper.or.kr", ""))
	code, _, _ := f.codes.Get(ctx, "new@keeper.or.kr")

	assert.True(t, apperror.HasCode(s.ChangeEmail(ctx, m.ID, "new@keeper.or.kr", code, "nope"), apperror.MemberWrongPassword))
	assert.True(t, apperror.HasCode(s.ChangeEmail(ctx, m.ID, "new@keeper.or.kr", "000000x", "keeper1234"), apperror.AuthCodeMismatch))
	require.NoError(t, s.ChangeEmail(ctx, m.ID, "new@keeper.or.kr", code, "keeper1234"))

	got, _ := s.GetProfile(ctx, m.ID)
	assert.Equal(t, "new@keeper.or.kr", got.EmailAddress)
}

func TestChangeThumbnailReplacesOld(t *testing.T) {
	f := newFixture(t)
	m := f.member("keeper", 0)
	s := newMembers(f)
	ctx := context.Background()

	assert.Equal(t, "/img/default.png", s.ThumbnailURL(m))

	first, err := s.ChangeThumbnail(ctx, m.ID, Upload{FileName: "a.png", Reader: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
	second, err := s.ChangeThumbnail(ctx, m.ID, Upload{FileName: "b.png", Reader: bytes.NewReader(pngHeader)})
	require.NoError(t, err)

	assert.NotEqual(t, first.ThumbnailPath, second.ThumbnailPath)
	assert.Equal(t, 1, f.blobs.Len())
	assert.Equal(t, "/files/"+second.ThumbnailPath, s.ThumbnailURL(second))
}

func TestAssignAndRemoveJob(t *testing.T) {
	f := newFixture(t)
	m := f.member("keeper", 0, entity.JobMember)
	s := newMembers(f)
	ctx := context.Background()

	assert.True(t, apperror.HasCode(s.AssignJob(ctx, m.ID, "ROLE_KING"), apperror.MemberJobNotFound))
	require.NoError(t, s.AssignJob(ctx, m.ID, entity.JobLibrarian))
	require.NoError(t, s.AssignJob(ctx, m.ID, entity.JobLibrarian))

	got, _ := s.GetProfile(ctx, m.ID)
	assert.ElementsMatch(t, []entity.JobType{entity.JobMember, entity.JobLibrarian}, got.Jobs)

	require.NoError(t, s.RemoveJob(ctx, m.ID, entity.JobLibrarian))
	got, _ = s.GetProfile(ctx, m.ID)
	assert.Equal(t, []entity.JobType{entity.JobMember}, got.Jobs)

	_, err := s.GetProfile(ctx, 999)
	assert.True(t, apperror.HasCode(err, apperror.MemberNotFound))
}

func TestPointRanking(t *testing.T) {
	f := newFixture(t)
	f.member("low", 1)
	f.member("high", 100)
	f.member("mid", 50)
	s := newMembers(f)

	list, total, err := s.PointRanking(context.Background(), repository.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "high", list[0].LoginID)
	assert.Equal(t, "mid", list[1].LoginID)
}

func TestCtfContest(t *testing.T) {
	f := newFixture(t)
	admin := f.member("admin", 0, entity.JobCtfAdmin)
	s := NewCtfService(f.store.Contests())
	ctx := context.Background()

	c, err := s.Create(ctx, admin.ID, "KEEPER CTF", "annual")
	require.NoError(t, err)
	require.NoError(t, s.Open(ctx, c.ID))

	list, _, err := s.List(ctx, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsJoinable)
	assert.Equal(t, "admin", list[0].CreatorName)

	assert.True(t, apperror.HasCode(s.Close(ctx, 999), apperror.CtfContestNotFound))
}
