package tasks

import (
	"context"
	"log/slog"
)

type CheckFeedTask struct {
	Task
	runner Runner
}

func NewCheckFeedTask(runner Runner) *CheckFeedTask {
	return &CheckFeedTask{
		Task:   NewTask(TaskTypeCheckFeed),
		runner: runner,
	}
}

// Execute returns the run's primary error. The failure has already been
// reported through an error card by then, so it is only logged.
func (t *CheckFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	outcome := t.runner.Run(ctx)

	slog.Info("Task completed",
		"type", "CheckedFeed",
		"id", t.ID,
		"run_id", outcome.RunID,
		"duration", t.GetDuration(),
		"success", outcome.Succeeded())

	return outcome.Err
}
