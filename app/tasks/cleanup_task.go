package tasks

import (
	"context"
	"log/slog"

	"github.com/nyacktoday/nyack-events/app/scrape"
)

// CleanupTask removes events whose start date aged out of the
// retention window. Safe to run repeatedly.
type CleanupTask struct {
	Task
	orchestrator *scrape.Orchestrator
}

func NewCleanupTask(orchestrator *scrape.Orchestrator) *CleanupTask {
	return &CleanupTask{
		Task:         NewTask(TaskTypeCleanup, ""),
		orchestrator: orchestrator,
	}
}

func (t *CleanupTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	removed, err := t.orchestrator.Cleanup(ctx)
	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", string(TaskTypeCleanup),
		"duration", t.GetDuration(),
		"removed", removed)

	return nil
}
