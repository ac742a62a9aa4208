package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var _ EventRepository = (*EventRepo)(nil)

// EventRepo handles database operations for events
type EventRepo struct {
	db *DB
}

func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `id, title, COALESCE(description, ''), start_date, end_date,
	       venue, COALESCE(address, ''), city, is_nyack_proper, category,
	       COALESCE(price, ''), is_free, is_family_friendly,
	       source_url, source_name, COALESCE(image_url, ''),
	       source_hash, is_hidden, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*Event, error) {
	var event Event
	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.StartDate, &event.EndDate,
		&event.Venue, &event.Address, &event.City, &event.IsNyackProper, &event.Category,
		&event.Price, &event.IsFree, &event.IsFamilyFriendly,
		&event.SourceURL, &event.SourceName, &event.ImageURL,
		&event.SourceHash, &event.IsHidden, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.SourceHash = strings.TrimSpace(event.SourceHash)
	return &event, nil
}

// GetBySourceHash retrieves an event by its fingerprint
func (r *EventRepo) GetBySourceHash(sourceHash string) (*Event, error) {
	row := r.db.QueryRow(`
		SELECT `+eventColumns+`
		FROM events
		WHERE source_hash = $1
	`, sourceHash)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event by source hash: %w", err)
	}

	return event, nil
}

// CreateEvent inserts a new event row
func (r *EventRepo) CreateEvent(event Event) error {
	_, err := r.db.Exec(`
		INSERT INTO events (
			title, description, start_date, end_date, venue, address, city,
			is_nyack_proper, category, price, is_free, is_family_friendly,
			source_url, source_name, image_url, source_hash
		) VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), $7,
			$8, $9, NULLIF($10, ''), $11, $12, $13, $14, NULLIF($15, ''), $16)
	`, event.Title, event.Description, event.StartDate, event.EndDate,
		event.Venue, event.Address, event.City,
		event.IsNyackProper, event.Category, event.Price, event.IsFree, event.IsFamilyFriendly,
		event.SourceURL, event.SourceName, event.ImageURL, event.SourceHash)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// UpdateFromSource refreshes the mutable fields of an existing event.
// Start date, venue, city and category keep their first-sighting values.
func (r *EventRepo) UpdateFromSource(sourceHash string, update EventUpdate) error {
	_, err := r.db.Exec(`
		UPDATE events
		SET title = $2, description = NULLIF($3, ''), end_date = $4,
		    address = NULLIF($5, ''), price = NULLIF($6, ''), is_free = $7,
		    is_family_friendly = $8, image_url = NULLIF($9, ''),
		    source_url = $10, updated_at = NOW()
		WHERE source_hash = $1
	`, sourceHash, update.Title, update.Description, update.EndDate,
		update.Address, update.Price, update.IsFree,
		update.IsFamilyFriendly, update.ImageURL, update.SourceURL)

	if err != nil {
		return fmt.Errorf("failed to update event from source: %w", err)
	}

	return nil
}

// DeleteStartedBefore removes events whose start date is older than the
// cutoff and returns the number of rows removed.
func (r *EventRepo) DeleteStartedBefore(cutoff time.Time) (int, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE start_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old events: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get deleted row count: %w", err)
	}

	return int(count), nil
}

// GetEventByID retrieves an event by its identifier
func (r *EventRepo) GetEventByID(id string) (*Event, error) {
	row := r.db.QueryRow(`
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1
	`, id)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event by ID: %w", err)
	}

	return event, nil
}

func buildEventWhere(filter EventFilter) (string, []any) {
	conditions := []string{}
	args := []any{}

	if !filter.IncludeHidden {
		conditions = append(conditions, "is_hidden = false")
	}
	if filter.StartAfter != nil {
		args = append(args, *filter.StartAfter)
		conditions = append(conditions, "start_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.StartBefore != nil {
		args = append(args, *filter.StartBefore)
		conditions = append(conditions, "start_date <= $"+strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.FreeOnly {
		conditions = append(conditions, "is_free = true")
	}
	if filter.FamilyFriendlyOnly {
		conditions = append(conditions, "is_family_friendly = true")
	}
	if filter.NyackOnly {
		conditions = append(conditions, "is_nyack_proper = true")
	} else if filter.NearbyOnly {
		conditions = append(conditions, "is_nyack_proper = false")
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// ListEvents returns events matching the filter, ordered by start date
func (r *EventRepo) ListEvents(filter EventFilter) ([]Event, error) {
	where, args := buildEventWhere(filter)

	query := `SELECT ` + eventColumns + ` FROM events` + where + ` ORDER BY start_date ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// CountEvents returns the number of events matching the filter
func (r *EventRepo) CountEvents(filter EventFilter) (int, error) {
	where, args := buildEventWhere(filter)

	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	return count, nil
}

// PatchEvent applies a partial admin update; nil fields are untouched
func (r *EventRepo) PatchEvent(id string, patch EventPatch) error {
	sets := []string{}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", sql.NullString{String: *patch.Description, Valid: *patch.Description != ""})
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.Venue != nil {
		add("venue", *patch.Venue)
	}
	if patch.Address != nil {
		add("address", sql.NullString{String: *patch.Address, Valid: *patch.Address != ""})
	}
	if patch.City != nil {
		add("city", *patch.City)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Price != nil {
		add("price", sql.NullString{String: *patch.Price, Valid: *patch.Price != ""})
	}
	if patch.IsFree != nil {
		add("is_free", *patch.IsFree)
	}
	if patch.IsFamilyFriendly != nil {
		add("is_family_friendly", *patch.IsFamilyFriendly)
	}
	if patch.ImageURL != nil {
		add("image_url", sql.NullString{String: *patch.ImageURL, Valid: *patch.ImageURL != ""})
	}
	if patch.IsHidden != nil {
		add("is_hidden", *patch.IsHidden)
	}

	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE events SET " + strings.Join(sets, ", ") + ", updated_at = NOW() WHERE id = $1"
	_, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch event: %w", err)
	}

	return nil
}

// DeleteEvent removes a single event by identifier
func (r *EventRepo) DeleteEvent(id string) error {
	_, err := r.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}
