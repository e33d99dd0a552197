package zeltysync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/restoflow/resto_backend/appctx"
	"github.com/restoflow/resto_backend/config"
	"github.com/restoflow/resto_backend/models"
	"github.com/sirupsen/logrus"
)

const (
	ResourceRestaurants = "restaurants"
	ResourceDishes      = "dishes"
	ResourceOrders      = "orders"
)

// ErrSyncInProgress is returned when a run of the same resource type is
// already in flight, scheduled or manual.
var ErrSyncInProgress = errors.New("sync already in progress for this resource")

const (
	runLockTTL = 15 * time.Minute

	// Last finished run per resource, cached for the status endpoint so it
	// does not hit the database on every poll.
	lastRunCacheTTL = time.Hour
)

func lastRunCacheKey(resource string) string {
	return "sync:last_run:" + resource
}

// RunOptions carries the per-run parameters. From/To apply to orders only.
type RunOptions struct {
	From time.Time
	To   time.Time
}

// RunResult summarizes one completed run.
type RunResult struct {
	RunId         uint
	Status        string
	RecordsSynced int
	ErrorCount    int
}

// Runner serializes synchronizer runs: at most one in-flight run per resource
// type. The in-process mutex covers this instance; the redis lease covers
// overlapping instances and is best-effort, matching the rest of this
// codebase: when redis is unavailable the run proceeds under the local lock
// alone, with a warning.
type Runner struct {
	Syncer *Syncer
	Store  Store
	Locker *redislock.Client
	Logger *logrus.Logger

	locks map[string]*sync.Mutex
}

func NewRunner(syncer *Syncer, store Store, locker *redislock.Client, logger *logrus.Logger) *Runner {
	return &Runner{
		Syncer: syncer,
		Store:  store,
		Locker: locker,
		Logger: logger,
		locks: map[string]*sync.Mutex{
			ResourceRestaurants: {},
			ResourceDishes:      {},
			ResourceOrders:      {},
		},
	}
}

// Run acquires the resource's advisory lock, records a SyncRun row, invokes
// the synchronizer and finalizes the row. A blocked caller is told to retry
// later via ErrSyncInProgress, it does not wait.
func (r *Runner) Run(ctx context.Context, resource string, opts RunOptions) (*RunResult, error) {
	mu, ok := r.locks[resource]
	if !ok {
		return nil, fmt.Errorf("unknown sync resource %q", resource)
	}
	if !mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer mu.Unlock()

	lease, err := r.obtainLease(ctx, resource)
	if err != nil {
		return nil, err
	}
	if lease != nil {
		defer func() {
			if err := lease.Release(ctx); err != nil {
				r.Logger.WithFields(logrus.Fields{
					"module":   "zeltysync",
					"resource": resource,
				}).Warn("failed to release redis lock: " + err.Error())
			}
		}()
	}

	triggeredBy, _ := appctx.GetTriggerSourceFromContext(ctx)
	if triggeredBy == "" {
		triggeredBy = models.SyncTriggeredManual
	}

	startedAt := r.Syncer.Now()
	run := models.SyncRun{
		Resource:    resource,
		Status:      models.SyncRunStatusRunning,
		TriggeredBy: triggeredBy,
		StartedAt:   &startedAt,
	}
	if resource == ResourceOrders {
		from, to := opts.From, opts.To
		if from.IsZero() || to.IsZero() {
			defFrom, defTo := DefaultOrderWindow(startedAt)
			if from.IsZero() {
				from = defFrom
			}
			if to.IsZero() {
				to = defTo
			}
		}
		run.FromDate = &from
		run.ToDate = &to
		opts.From, opts.To = from, to
	}
	if err := r.Store.CreateRun(ctx, &run); err != nil {
		return nil, err
	}
	// Drop the cached summary while the run is in flight; readers fall back
	// to the database and see the running row.
	if err := config.RemoveRedisKey(lastRunCacheKey(resource)); err != nil {
		r.Logger.WithFields(logrus.Fields{
			"module":   "zeltysync",
			"resource": resource,
		}).Warn("failed to invalidate last-run cache: " + err.Error())
	}

	synced, errorCount, runErr := r.invoke(ctx, resource, opts, run.ID)

	finishedAt := r.Syncer.Now()
	status := models.SyncRunStatusSuccess
	if runErr != nil {
		status = models.SyncRunStatusFailed
	} else if errorCount > 0 {
		status = models.SyncRunStatusPartial
	}
	updates := map[string]interface{}{
		"status":         status,
		"finished_at":    finishedAt,
		"duration_ms":    finishedAt.Sub(startedAt).Milliseconds(),
		"records_synced": synced,
		"error_count":    errorCount,
	}
	if err := r.Store.FinishRun(ctx, run.ID, updates); err != nil {
		config.LogError(r.Logger, "zeltysync", "Run", "finish run", logrus.Fields{"run_id": run.ID}, err)
	}

	run.Status = status
	run.FinishedAt = &finishedAt
	run.DurationMs = finishedAt.Sub(startedAt).Milliseconds()
	run.RecordsSynced = synced
	run.ErrorCount = errorCount
	if err := config.SetRedisObject(lastRunCacheKey(resource), run, lastRunCacheTTL); err != nil {
		r.Logger.WithFields(logrus.Fields{
			"module":   "zeltysync",
			"resource": resource,
		}).Warn("failed to cache last run: " + err.Error())
	}

	result := &RunResult{
		RunId:         run.ID,
		Status:        status,
		RecordsSynced: synced,
		ErrorCount:    errorCount,
	}
	if runErr != nil {
		return result, runErr
	}
	return result, nil
}

func (r *Runner) invoke(ctx context.Context, resource string, opts RunOptions, runId uint) (int, int, error) {
	switch resource {
	case ResourceRestaurants:
		n, err := r.Syncer.SyncRestaurants(ctx)
		return n, 0, err
	case ResourceDishes:
		n, err := r.Syncer.SyncDishes(ctx)
		return n, 0, err
	case ResourceOrders:
		res, err := r.Syncer.SyncOrders(ctx, opts.From, opts.To, runId)
		return res.OrdersSynced, len(res.FailedItems()), err
	}
	return 0, 0, fmt.Errorf("unknown sync resource %q", resource)
}

func (r *Runner) obtainLease(ctx context.Context, resource string) (*redislock.Lock, error) {
	locker := r.Locker
	if locker == nil {
		// The lock client is established after the HTTP server starts
		// listening; pick it up once it is ready.
		locker = config.GetRedisLock()
	}
	if locker == nil {
		r.Logger.WithFields(logrus.Fields{
			"module":   "zeltysync",
			"resource": resource,
		}).Warn("redis lock not ready; proceeding with local lock only")
		return nil, nil
	}
	lock, err := locker.Obtain(ctx, "lock:sync:"+resource, runLockTTL, nil)
	if err == redislock.ErrNotObtained {
		// Another instance holds the lease.
		return nil, ErrSyncInProgress
	}
	if err != nil {
		r.Logger.WithFields(logrus.Fields{
			"module":   "zeltysync",
			"resource": resource,
		}).Warn("error obtaining redis lock; proceeding with local lock only: " + err.Error())
		return nil, nil
	}
	return lock, nil
}
