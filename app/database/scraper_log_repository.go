package database

import (
	"fmt"
)

var _ ScraperLogRepository = (*ScraperLogRepo)(nil)

// ScraperLogRepo handles the append-only scraper run audit log
type ScraperLogRepo struct {
	db *DB
}

func NewScraperLogRepo(db *DB) *ScraperLogRepo {
	return &ScraperLogRepo{db: db}
}

// CreateLog appends one run record. Rows are never mutated afterwards.
func (r *ScraperLogRepo) CreateLog(log ScraperLog) error {
	_, err := r.db.Exec(`
		INSERT INTO scraper_logs (source_name, status, events_found, events_added, error_message)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
	`, log.SourceName, log.Status, log.EventsFound, log.EventsAdded, log.ErrorMessage)

	if err != nil {
		return fmt.Errorf("failed to create scraper log: %w", err)
	}

	return nil
}

// GetRecentLogs returns the most recent run records across all sources
func (r *ScraperLogRepo) GetRecentLogs(limit int) ([]ScraperLog, error) {
	rows, err := r.db.Query(`
		SELECT id, source_name, status, events_found, events_added,
		       COALESCE(error_message, ''), run_at
		FROM scraper_logs
		ORDER BY run_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent scraper logs: %w", err)
	}
	defer rows.Close()

	var logs []ScraperLog
	for rows.Next() {
		var log ScraperLog
		err := rows.Scan(&log.ID, &log.SourceName, &log.Status, &log.EventsFound,
			&log.EventsAdded, &log.ErrorMessage, &log.RunAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scraper log row: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scraper log rows: %w", err)
	}

	return logs, nil
}

// GetLastRunBySource returns the latest run record for each source
func (r *ScraperLogRepo) GetLastRunBySource() (map[string]ScraperLog, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT ON (source_name)
		       id, source_name, status, events_found, events_added,
		       COALESCE(error_message, ''), run_at
		FROM scraper_logs
		ORDER BY source_name, run_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get last runs by source: %w", err)
	}
	defer rows.Close()

	result := make(map[string]ScraperLog)
	for rows.Next() {
		var log ScraperLog
		err := rows.Scan(&log.ID, &log.SourceName, &log.Status, &log.EventsFound,
			&log.EventsAdded, &log.ErrorMessage, &log.RunAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scraper log row: %w", err)
		}
		result[log.SourceName] = log
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scraper log rows: %w", err)
	}

	return result, nil
}
