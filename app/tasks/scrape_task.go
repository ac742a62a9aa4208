package tasks

import (
	"context"
	"log/slog"

	"github.com/nyacktoday/nyack-events/app/scrape"
)

// ScrapeTask runs the scraper pipeline. An empty SourceName runs
// every source; a named task runs just that one.
type ScrapeTask struct {
	Task
	orchestrator *scrape.Orchestrator
}

func NewScrapeTask(orchestrator *scrape.Orchestrator, sourceName string) *ScrapeTask {
	return &ScrapeTask{
		Task:         NewTask(TaskTypeScrape, sourceName),
		orchestrator: orchestrator,
	}
}

func (t *ScrapeTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var summary *scrape.RunSummary
	if t.SourceName == "" {
		summary = t.orchestrator.RunAll(ctx)
	} else {
		var err error
		summary, err = t.orchestrator.RunOne(ctx, t.SourceName)
		if err != nil {
			return err
		}
	}

	slog.Info("Task completed",
		"type", string(TaskTypeScrape),
		"run_id", summary.RunID,
		"duration", t.GetDuration(),
		"found", summary.TotalFound,
		"added", summary.TotalAdded,
		"updated", summary.TotalUpdated,
		"duplicate", summary.TotalDuplicate,
		"failed", summary.FailedCount)

	return nil
}
