package tasks

import (
	"context"

	"github.com/bbz662/english-teacher/app/pipeline"
)

// TaskSchedulerInterface runs feed checks on a timer and on demand.
// Example usage:
//
//	scheduler := NewScheduler(cfg, func() Runner { return pipeline.New(cfg, httpClient) })
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// Runner performs one feed check. It reports failures through the returned
// outcome and must not panic.
type Runner interface {
	Run(ctx context.Context) pipeline.Outcome
}

type RunnerFactory func() Runner
