package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyacktoday/nyack-events/app/database"
	"github.com/nyacktoday/nyack-events/app/notify"
)

// ErrSourceNotFound is returned by RunOne for an unknown source name.
var ErrSourceNotFound = errors.New("source not found")

// CleanupRetention is how long past events stay queryable before the
// cleanup task removes them.
const CleanupRetention = 7 * 24 * time.Hour

// Notifier receives run outcome notifications. Delivery is best
// effort; the orchestrator never waits on or fails from it.
type Notifier interface {
	Notify(ctx context.Context, notification notify.Notification)
}

// SourceRun is the outcome of one source within a run.
type SourceRun struct {
	SourceName      string `json:"sourceName"`
	Status          Status `json:"status"`
	EventsFound     int    `json:"eventsFound"`
	EventsAdded     int    `json:"eventsAdded"`
	EventsUpdated   int    `json:"eventsUpdated"`
	EventsDuplicate int    `json:"eventsDuplicate"`
	ErrorMessage    string `json:"errorMessage,omitempty"`
}

// RunSummary aggregates a full scrape run.
type RunSummary struct {
	RunID          string        `json:"runId"`
	Sources        []SourceRun   `json:"sources"`
	TotalFound     int           `json:"totalFound"`
	TotalAdded     int           `json:"totalAdded"`
	TotalUpdated   int           `json:"totalUpdated"`
	TotalDuplicate int           `json:"totalDuplicate"`
	Duration       time.Duration `json:"-"`
	StartedAt      time.Time     `json:"startedAt"`
	FailedCount    int           `json:"failedCount"`
}

// Orchestrator runs the scrapers sequentially, deduplicates their
// candidates against the events table and records one log row per
// source per run.
type Orchestrator struct {
	sources   []Source
	eventRepo database.EventRepository
	logRepo   database.ScraperLogRepository
	notifier  Notifier
}

func NewOrchestrator(sources []Source, eventRepo database.EventRepository,
	logRepo database.ScraperLogRepository, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		sources:   sources,
		eventRepo: eventRepo,
		logRepo:   logRepo,
		notifier:  notifier,
	}
}

// SourceNames lists the registered sources in execution order.
func (o *Orchestrator) SourceNames() []string {
	names := make([]string, 0, len(o.sources))
	for _, source := range o.sources {
		names = append(names, source.Name())
	}
	return names
}

// RunAll executes every registered source in order. A failing source
// never stops the run; its failure is logged and reported in the
// summary.
func (o *Orchestrator) RunAll(ctx context.Context) *RunSummary {
	return o.run(ctx, o.sources)
}

// RunOne executes a single source, matched case-insensitively.
func (o *Orchestrator) RunOne(ctx context.Context, name string) (*RunSummary, error) {
	for _, source := range o.sources {
		if strings.EqualFold(source.Name(), name) {
			return o.run(ctx, []Source{source}), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, name)
}

func (o *Orchestrator) run(ctx context.Context, sources []Source) *RunSummary {
	summary := &RunSummary{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}

	slog.Info("Scrape run started", "run_id", summary.RunID, "sources", len(sources))

	for _, source := range sources {
		result := scrapeWithRecovery(ctx, source)
		run := o.persistResult(result)

		summary.Sources = append(summary.Sources, run)
		summary.TotalFound += run.EventsFound
		summary.TotalAdded += run.EventsAdded
		summary.TotalUpdated += run.EventsUpdated
		summary.TotalDuplicate += run.EventsDuplicate
		if run.Status == StatusError {
			summary.FailedCount++
		}

		slog.Info("Source completed",
			"run_id", summary.RunID,
			"source", run.SourceName,
			"status", string(run.Status),
			"found", run.EventsFound,
			"added", run.EventsAdded,
			"updated", run.EventsUpdated,
			"duplicate", run.EventsDuplicate)
	}

	summary.Duration = time.Since(summary.StartedAt)
	slog.Info("Scrape run completed",
		"run_id", summary.RunID,
		"duration", summary.Duration.Round(time.Millisecond).String(),
		"total_found", summary.TotalFound,
		"total_added", summary.TotalAdded,
		"total_updated", summary.TotalUpdated,
		"total_duplicate", summary.TotalDuplicate,
		"failed", summary.FailedCount)

	o.notifyRun(ctx, summary)

	return summary
}

// scrapeWithRecovery shields the run from a panicking extractor. Site
// markup is hostile input; one broken page must not take down the
// other sources.
func scrapeWithRecovery(ctx context.Context, source Source) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Source panicked", "source", source.Name(), "panic", r)
			result = Result{
				SourceName:   source.Name(),
				Status:       StatusError,
				ErrorMessage: fmt.Sprintf("panic: %v", r),
			}
		}
	}()
	return source.Scrape(ctx)
}

// persistResult saves a source's candidates and writes its log row.
// Candidates that fail to persist are counted but do not abort the
// remaining candidates.
func (o *Orchestrator) persistResult(result Result) SourceRun {
	run := SourceRun{
		SourceName:   result.SourceName,
		Status:       result.Status,
		EventsFound:  len(result.Events),
		ErrorMessage: result.ErrorMessage,
	}

	persistErrors := 0
	for _, candidate := range result.Events {
		outcome, err := o.saveCandidate(candidate)
		if err != nil {
			persistErrors++
			slog.Warn("Failed to save event",
				"source", result.SourceName,
				"title", candidate.Title,
				"error", err)
			continue
		}
		switch outcome {
		case outcomeAdded:
			run.EventsAdded++
		case outcomeUpdated:
			run.EventsUpdated++
		case outcomeDuplicate:
			run.EventsDuplicate++
		}
	}

	if persistErrors > 0 && run.Status == StatusSuccess {
		run.Status = StatusPartial
		run.ErrorMessage = fmt.Sprintf("%d events failed to save", persistErrors)
	}

	logRow := database.ScraperLog{
		SourceName:   run.SourceName,
		Status:       string(run.Status),
		EventsFound:  run.EventsFound,
		EventsAdded:  run.EventsAdded,
		ErrorMessage: run.ErrorMessage,
		RunAt:        time.Now(),
	}
	if err := o.logRepo.CreateLog(logRow); err != nil {
		slog.Error("Failed to write scraper log", "source", run.SourceName, "error", err)
	}

	return run
}

// saveOutcome is the per-candidate result of the dedup rule.
type saveOutcome int

const (
	outcomeAdded saveOutcome = iota
	outcomeUpdated
	outcomeDuplicate
)

// saveCandidate applies the dedup rule. A new fingerprint inserts; a
// fingerprint seen again from the same source refreshes the mutable
// fields; a fingerprint owned by another source is dropped so the
// first writer wins.
func (o *Orchestrator) saveCandidate(candidate Candidate) (saveOutcome, error) {
	hash := GenerateEventHash(candidate.Title, candidate.Venue, candidate.StartDate)

	existing, err := o.eventRepo.GetBySourceHash(hash)
	if err != nil {
		return outcomeDuplicate, fmt.Errorf("failed to look up fingerprint: %w", err)
	}

	if existing == nil {
		event := database.Event{
			Title:            candidate.Title,
			Description:      candidate.Description,
			StartDate:        candidate.StartDate,
			EndDate:          candidate.EndDate,
			Venue:            candidate.Venue,
			Address:          candidate.Address,
			City:             candidate.City,
			IsNyackProper:    candidate.IsNyackProper,
			Category:         string(candidate.Category),
			Price:            candidate.Price,
			IsFree:           candidate.IsFree,
			IsFamilyFriendly: candidate.IsFamilyFriendly,
			SourceURL:        candidate.SourceURL,
			SourceName:       candidate.SourceName,
			ImageURL:         candidate.ImageURL,
			SourceHash:       hash,
		}
		if err := o.eventRepo.CreateEvent(event); err != nil {
			return outcomeAdded, fmt.Errorf("failed to create event: %w", err)
		}
		return outcomeAdded, nil
	}

	if existing.SourceName != candidate.SourceName {
		// Another source already owns this fingerprint.
		return outcomeDuplicate, nil
	}

	update := database.EventUpdate{
		Title:            candidate.Title,
		Description:      candidate.Description,
		EndDate:          candidate.EndDate,
		Address:          candidate.Address,
		Price:            candidate.Price,
		IsFree:           candidate.IsFree,
		IsFamilyFriendly: candidate.IsFamilyFriendly,
		ImageURL:         candidate.ImageURL,
		SourceURL:        candidate.SourceURL,
	}
	if err := o.eventRepo.UpdateFromSource(hash, update); err != nil {
		return outcomeUpdated, fmt.Errorf("failed to refresh event: %w", err)
	}
	return outcomeUpdated, nil
}

// Cleanup removes events whose start date fell out of the retention
// window. Events still in progress (recent start, future end) are
// kept until their start date ages out.
func (o *Orchestrator) Cleanup(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-CleanupRetention)

	removed, err := o.eventRepo.DeleteStartedBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up events: %w", err)
	}

	slog.Info("Cleanup completed", "removed", removed, "cutoff", cutoff.Format("2006-01-02"))
	return removed, nil
}

// notifyRun publishes the run outcome. Warning severity when any
// source failed outright.
func (o *Orchestrator) notifyRun(ctx context.Context, summary *RunSummary) {
	if o.notifier == nil {
		return
	}

	severity := notify.SeverityInfo
	title := "Scrape run completed"
	if summary.FailedCount > 0 {
		severity = notify.SeverityWarning
		title = fmt.Sprintf("Scrape run completed with %d failed source(s)", summary.FailedCount)
	}

	details := make(map[string]string, len(summary.Sources))
	for _, run := range summary.Sources {
		value := fmt.Sprintf("%s, %d found, %d added, %d updated, %d duplicate",
			run.Status, run.EventsFound, run.EventsAdded, run.EventsUpdated, run.EventsDuplicate)
		if run.ErrorMessage != "" {
			value += ": " + run.ErrorMessage
		}
		details[run.SourceName] = value
	}

	o.notifier.Notify(ctx, notify.Notification{
		Severity: severity,
		Title:    title,
		Message: fmt.Sprintf("%d events found, %d new, %d updated, %d duplicate, in %s",
			summary.TotalFound, summary.TotalAdded, summary.TotalUpdated, summary.TotalDuplicate,
			summary.Duration.Round(time.Second)),
		Details: details,
	})
}
