package database

import (
	"database/sql"
	"fmt"
)

var _ ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo handles database operations for curated activities
type ActivityRepo struct {
	db *DB
}

func NewActivityRepo(db *DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

const activityColumns = `id, title, COALESCE(description, ''), venue, COALESCE(address, ''), city,
	       is_nyack_proper, category, COALESCE(price, ''), is_free, is_family_friendly,
	       COALESCE(website_url, ''), COALESCE(image_url, ''), COALESCE(hours, ''),
	       is_active, created_at, updated_at`

func scanActivity(row interface{ Scan(...any) error }) (*Activity, error) {
	var activity Activity
	err := row.Scan(
		&activity.ID, &activity.Title, &activity.Description, &activity.Venue,
		&activity.Address, &activity.City, &activity.IsNyackProper, &activity.Category,
		&activity.Price, &activity.IsFree, &activity.IsFamilyFriendly,
		&activity.WebsiteURL, &activity.ImageURL, &activity.Hours,
		&activity.IsActive, &activity.CreatedAt, &activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListActivities returns activities, optionally restricted to active ones
func (r *ActivityRepo) ListActivities(activeOnly bool) ([]Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY title ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, *activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}

// GetActivityByID retrieves an activity by its identifier
func (r *ActivityRepo) GetActivityByID(id string) (*Activity, error) {
	row := r.db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)

	activity, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity by ID: %w", err)
	}

	return activity, nil
}

// CreateActivity inserts a new activity and returns its identifier
func (r *ActivityRepo) CreateActivity(activity Activity) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO activities (
			title, description, venue, address, city, is_nyack_proper, category,
			price, is_free, is_family_friendly, website_url, image_url, hours, is_active
		) VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6, $7,
			NULLIF($8, ''), $9, $10, NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), $14)
		RETURNING id
	`, activity.Title, activity.Description, activity.Venue, activity.Address,
		activity.City, activity.IsNyackProper, activity.Category,
		activity.Price, activity.IsFree, activity.IsFamilyFriendly,
		activity.WebsiteURL, activity.ImageURL, activity.Hours, activity.IsActive).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create activity: %w", err)
	}

	return id, nil
}

// UpdateActivity replaces all editable fields of an activity
func (r *ActivityRepo) UpdateActivity(activity Activity) error {
	_, err := r.db.Exec(`
		UPDATE activities
		SET title = $2, description = NULLIF($3, ''), venue = $4, address = NULLIF($5, ''),
		    city = $6, is_nyack_proper = $7, category = $8, price = NULLIF($9, ''),
		    is_free = $10, is_family_friendly = $11, website_url = NULLIF($12, ''),
		    image_url = NULLIF($13, ''), hours = NULLIF($14, ''), is_active = $15,
		    updated_at = NOW()
		WHERE id = $1
	`, activity.ID, activity.Title, activity.Description, activity.Venue, activity.Address,
		activity.City, activity.IsNyackProper, activity.Category, activity.Price,
		activity.IsFree, activity.IsFamilyFriendly, activity.WebsiteURL,
		activity.ImageURL, activity.Hours, activity.IsActive)

	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	return nil
}

// DeleteActivity removes an activity by identifier
func (r *ActivityRepo) DeleteActivity(id string) error {
	_, err := r.db.Exec(`DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	return nil
}
