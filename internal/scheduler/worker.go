package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow_backend/platform/config"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/metrics"

	"github.com/hibiken/asynq"
)

// Recomputer is the slice of the pipeline service the worker drives.
type Recomputer interface {
	RecomputeDesignCycles(ctx context.Context) (int64, error)
	RecomputeSplitCycles(ctx context.Context) (int64, error)
	RecomputeProductionStatus(ctx context.Context, productionID int64) (string, error)
	RecomputeAllProductions(ctx context.Context) (map[int64]string, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	jobs   Recomputer
	lock   *RunLock
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, jobs Recomputer, lock *RunLock, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newWorker(jobs, lock, log)
	w.server = server
	return w, nil
}

func newWorker(jobs Recomputer, lock *RunLock, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:  mux,
		jobs: jobs,
		lock: lock,
		log:  log,
	}

	mux.HandleFunc(TaskDesignCycleRecompute, w.handleDesignCycle)
	mux.HandleFunc(TaskSplitCycleRecompute, w.handleSplitCycle)
	mux.HandleFunc(TaskProductionStatusRecompute, w.handleProductionRecompute)

	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleDesignCycle(ctx context.Context, _ *asynq.Task) error {
	return w.exclusive(ctx, TaskDesignCycleRecompute, func(ctx context.Context) error {
		n, err := w.jobs.RecomputeDesignCycles(ctx)
		if err != nil {
			return err
		}
		w.log.Info("design cycles recomputed", "updated", n)
		return nil
	})
}

func (w *Worker) handleSplitCycle(ctx context.Context, _ *asynq.Task) error {
	return w.exclusive(ctx, TaskSplitCycleRecompute, func(ctx context.Context) error {
		n, err := w.jobs.RecomputeSplitCycles(ctx)
		if err != nil {
			return err
		}
		w.log.Info("split cycles recomputed", "updated", n)
		return nil
	})
}

func (w *Worker) handleProductionRecompute(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProductionRecomputePayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if payload.ProductionID > 0 {
		status, err := w.jobs.RecomputeProductionStatus(ctx, payload.ProductionID)
		if err != nil {
			return err
		}
		w.log.Info("production status recomputed", "productionId", payload.ProductionID, "status", status)
		return nil
	}

	return w.exclusive(ctx, TaskProductionStatusRecompute, func(ctx context.Context) error {
		results, err := w.jobs.RecomputeAllProductions(ctx)
		if err != nil {
			return err
		}
		w.log.Info("production statuses recomputed", "count", len(results))
		return nil
	})
}

// exclusive runs fn under the named run-lock and records the outcome. A run
// that finds the lock taken is skipped, not retried.
func (w *Worker) exclusive(ctx context.Context, name string, fn func(context.Context) error) error {
	if w.lock != nil {
		release, err := w.lock.Acquire(ctx, name)
		if errors.Is(err, ErrLockHeld) {
			metrics.JobRunsTotal.WithLabelValues(name, "skipped").Inc()
			w.log.Info("job already running, skipping", "task", name)
			return nil
		}
		if err != nil {
			metrics.JobRunsTotal.WithLabelValues(name, "failed").Inc()
			return fmt.Errorf("acquire run lock %s: %w", name, err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				w.log.Warn("release run lock failed", "task", name, "error", err)
			}
		}()
	}

	start := time.Now()
	err := fn(ctx)
	metrics.JobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(name, "failed").Inc()
		w.log.Error("job failed", "task", name, "error", err)
		return err
	}
	metrics.JobRunsTotal.WithLabelValues(name, "succeeded").Inc()
	return nil
}
