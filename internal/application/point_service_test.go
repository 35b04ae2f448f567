package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

func TestPresentPoint(t *testing.T) {
	f := newFixture(t)
	giver := f.member("giver", 100)
	receiver := f.member("receiver", 10)
	logs := f.store.PointLogs()
	s := NewPointService(f.members, logs, fakesTx(), nil)
	ctx := context.Background()

	require.NoError(t, s.Present(ctx, giver.ID, receiver.ID, 30, "thanks"))

	g, _ := f.members.GetByID(ctx, giver.ID)
	r, _ := f.members.GetByID(ctx, receiver.ID)
	assert.Equal(t, 70, g.Point)
	assert.Equal(t, 40, r.Point)

	gl, total, err := s.ListLogs(ctx, giver.ID, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, -30, gl[0].Point)
	assert.True(t, gl[0].IsSpent)
	require.NotNil(t, gl[0].PresentedID)
	assert.Equal(t, receiver.ID, *gl[0].PresentedID)

	rl, _, err := s.ListLogs(ctx, receiver.ID, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Len(t, rl, 1)
	assert.Equal(t, 30, rl[0].Point)
	assert.False(t, rl[0].IsSpent)
}

func TestPresentPointRejects(t *testing.T) {
	f := newFixture(t)
	giver := f.member("giver", 5)
	receiver := f.member("receiver", 0)
	s := NewPointService(f.members, f.store.PointLogs(), fakesTx(), nil)
	ctx := context.Background()

	assert.True(t, apperror.HasCode(s.Present(ctx, giver.ID, receiver.ID, 10, ""), apperror.PointNotEnough))
	assert.True(t, apperror.HasCode(s.Present(ctx, giver.ID, giver.ID, 1, ""), apperror.PointSelfPresent))
	assert.True(t, apperror.HasCode(s.Present(ctx, giver.ID, receiver.ID, 0, ""), apperror.PointInvalidAmount))
	assert.True(t, apperror.HasCode(s.Present(ctx, giver.ID, 999, 1, ""), apperror.MemberNotFound))

	g, _ := f.members.GetByID(ctx, giver.ID)
	assert.Equal(t, 5, g.Point)
}

func TestConcurrentPresentsNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	giver := f.member("giver", 100)
	receiver := f.member("receiver", 0)
	s := NewPointService(f.members, f.store.PointLogs(), fakesTx(), nil)
	ctx := context.Background()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Present(ctx, giver.ID, receiver.ID, 60, "race")
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.True(t, apperror.HasCode(err, apperror.PointNotEnough))
			failed++
		}
	}
	assert.Equal(t, 1, failed)

	g, _ := f.members.GetByID(ctx, giver.ID)
	r, _ := f.members.GetByID(ctx, receiver.ID)
	assert.Equal(t, 40, g.Point)
	assert.Equal(t, 60, r.Point)
	assert.Equal(t, 100, g.Point+r.Point)
}
