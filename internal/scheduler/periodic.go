package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orderflow_backend/platform/config"
	"orderflow_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Entry is one recurring job: a cron spec and the task it enqueues.
type Entry struct {
	Spec string
	Task *asynq.Task
}

// Entries lists the recurring jobs with a non-empty schedule.
func Entries(cfg config.SchedulerConfig) ([]Entry, error) {
	production, err := NewProductionRecomputeTask(ProductionRecomputePayload{})
	if err != nil {
		return nil, err
	}

	all := []Entry{
		{Spec: cfg.GetDesignCycleSchedule(), Task: NewDesignCycleTask()},
		{Spec: cfg.GetSplitCycleSchedule(), Task: NewSplitCycleTask()},
		{Spec: cfg.GetProductionStatusSchedule(), Task: production},
	}

	entries := make([]Entry, 0, len(all))
	for _, e := range all {
		e.Spec = strings.TrimSpace(e.Spec)
		if e.Spec == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Periodic enqueues the recurring recompute jobs on their cron schedules.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	entries, err := Entries(cfg)
	if err != nil {
		return nil, err
	}

	s := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: time.UTC})
	queue := queueName(cfg)
	for _, e := range entries {
		id, err := s.Register(e.Spec, e.Task, asynq.Queue(queue), asynq.MaxRetry(1))
		if err != nil {
			return nil, fmt.Errorf("register %s (%q): %w", e.Task.Type(), e.Spec, err)
		}
		log.Info("periodic job registered", "task", e.Task.Type(), "spec", e.Spec, "entryId", id)
	}

	return &Periodic{scheduler: s, log: log}, nil
}

// Run starts the scheduler and stops it when ctx is done.
func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}
	if err := p.scheduler.Start(); err != nil {
		p.log.Error("periodic scheduler failed to start", "error", err)
		return
	}
	<-ctx.Done()
	p.scheduler.Shutdown()
}
