// Package scheduler runs periodic milestone sweeps.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper checks milestones for all users
type Sweeper interface {
	SweepMilestones(ctx context.Context) (int, error)
}

// Scheduler runs the milestone sweep on a cron schedule
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
	log     *logrus.Logger
}

// New creates a scheduler running sweeper on spec, a standard five-field cron expression
func New(spec string, sweeper Sweeper, timeout time.Duration, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		timeout: timeout,
		log:     log,
	}
	if _, err := s.cron.AddFunc(spec, s.runSweep); err != nil {
		return nil, fmt.Errorf("invalid milestone schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infof("Milestone scheduler started, next run at %s", s.cron.Entries()[0].Next.Format(time.RFC3339))
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Milestone scheduler stopped")
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	awarded, err := s.sweeper.SweepMilestones(ctx)
	if err != nil {
		s.log.Errorf("Milestone sweep failed after %s: %v", time.Since(start), err)
		return
	}
	s.log.WithFields(logrus.Fields{
		"awarded":  awarded,
		"duration": time.Since(start).String(),
	}).Info("Milestone sweep completed")
}
