package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reminder queues overdue borrow reminders and reports how many were queued.
type Reminder interface {
	RemindOverdue(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	logger  *logrus.Logger
	timeout time.Duration
}

// NewScheduler builds a cron scheduler in loc. A nil loc means time.Local.
func NewScheduler(logger *logrus.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		logger:  logger,
		timeout: 5 * time.Minute,
	}
}

// AddOverdueReminder registers r under spec. An empty spec leaves the job disabled.
func (s *Scheduler) AddOverdueReminder(spec string, r Reminder) error {
	if spec == "" || r == nil {
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() { s.runOverdue(r) })
	return err
}

func (s *Scheduler) runOverdue(r Reminder) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	n, err := r.RemindOverdue(ctx)
	if err != nil {
		s.logger.WithError(err).Error("overdue reminder failed")
		return
	}
	s.logger.WithField("queued", n).Info("overdue reminders queued")
}

// Entries reports the number of registered jobs.
func (s *Scheduler) Entries() int { return len(s.cron.Entries()) }

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs or until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
