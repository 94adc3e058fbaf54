// Package scheduler runs the periodic jobs: the overdue task sweep and
// the monthly payroll aggregation.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// TaskSweeper fails tasks that passed their due date.
type TaskSweeper interface {
	SweepOverdue(ctx context.Context) (int, error)
}

// PayrollRunner aggregates the previous month's ledger into salary
// records.
type PayrollRunner interface {
	RunMonthlyAggregation(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
}

// New builds a scheduler in the given location. Both specs are standard
// five-field cron expressions.
func New(location *time.Location, logger *logrus.Logger, sweepSpec, payrollSpec string, sweeper TaskSweeper, payroll PayrollRunner) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(location))

	if _, err := c.AddFunc(sweepSpec, func() {
		ctx := context.Background()
		swept, err := sweeper.SweepOverdue(ctx)
		if err != nil {
			logger.WithError(err).Error("overdue task sweep failed")
			return
		}
		logger.WithField("swept", swept).Info("overdue task sweep finished")
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(payrollSpec, func() {
		ctx := context.Background()
		created, err := payroll.RunMonthlyAggregation(ctx)
		if err != nil {
			logger.WithError(err).Error("monthly payroll aggregation failed")
			return
		}
		logger.WithField("created", created).Info("monthly payroll aggregation finished")
	}); err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
