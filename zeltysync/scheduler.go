package zeltysync

import (
	"context"
	"errors"

	"github.com/restoflow/resto_backend/appctx"
	"github.com/restoflow/resto_backend/config"
	"github.com/restoflow/resto_backend/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const scheduleSpec = "@every 5m"

type syncInvoker interface {
	Run(ctx context.Context, resource string, opts RunOptions) (*RunResult, error)
}

// Scheduler owns the fixed-interval sync trigger. Each tick runs the three
// synchronizers in strict sequence: restaurants first, then dishes, then
// orders, because dishes and orders reference restaurant ids. A failed step
// abandons the rest of the tick; the next tick fires regardless.
type Scheduler struct {
	runner syncInvoker
	logger *logrus.Logger
	cron   *cron.Cron
}

func NewScheduler(runner syncInvoker, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		logger: logger,
		cron:   cron.New(),
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(scheduleSpec, func() {
		s.tick(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the trigger and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) tick(ctx context.Context) {
	ctx = appctx.SetTriggerSourceInContext(ctx, models.SyncTriggeredSchedule)
	s.logger.WithFields(logrus.Fields{"module": "zeltysync"}).Info("scheduled sync batch started")

	for _, resource := range []string{ResourceRestaurants, ResourceDishes, ResourceOrders} {
		if !config.SyncResourceEnabled(resource) {
			continue
		}
		result, err := s.runner.Run(ctx, resource, RunOptions{})
		if err != nil {
			fields := logrus.Fields{"module": "zeltysync", "resource": resource}
			if errors.Is(err, ErrSyncInProgress) {
				s.logger.WithFields(fields).Warn("sync already running; abandoning this tick")
			} else {
				s.logger.WithFields(fields).Error("sync failed; abandoning this tick: " + err.Error())
			}
			return
		}
		s.logger.WithFields(logrus.Fields{
			"module":         "zeltysync",
			"resource":       resource,
			"run_id":         result.RunId,
			"status":         result.Status,
			"records_synced": result.RecordsSynced,
			"error_count":    result.ErrorCount,
		}).Info("scheduled sync step finished")
	}

	s.logger.WithFields(logrus.Fields{"module": "zeltysync"}).Info("scheduled sync batch finished")
}
