package jobs

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReminder struct {
	calls int
	err   error
}

func (r *countingReminder) RemindOverdue(context.Context) (int, error) {
	r.calls++
	return 2, r.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestAddOverdueReminder(t *testing.T) {
	s := NewScheduler(quietLogger(), nil)

	require.NoError(t, s.AddOverdueReminder("", &countingReminder{}))
	assert.Equal(t, 0, s.Entries())

	require.NoError(t, s.AddOverdueReminder("0 9 * * *", &countingReminder{}))
	assert.Equal(t, 1, s.Entries())

	assert.Error(t, s.AddOverdueReminder("every day", &countingReminder{}))
}

func TestRunOverdueSurvivesErrors(t *testing.T) {
	s := NewScheduler(quietLogger(), nil)
	r := &countingReminder{err: errors.New("db down")}

	s.runOverdue(r)
	s.runOverdue(r)
	assert.Equal(t, 2, r.calls)
}

func TestStopWithoutStart(t *testing.T) {
	s := NewScheduler(quietLogger(), nil)
	s.Stop(context.Background())
}
