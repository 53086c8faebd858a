package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/eventdeck/eventdeck/internal/model"
)

// Common errors for event repository operations.
var (
	// ErrEventNotFound covers both a missing row and an owner-scoped
	// mutation against someone else's row; the two are indistinguishable
	// at the SQL level and must stay that way (no existence leak).
	ErrEventNotFound = errors.New("event not found")
)

const eventColumns = `id, title, description, date, location, capacity, owner_id, status, created_at, updated_at`

// CreateEvent inserts a new event.
func (r *Repository) CreateEvent(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.Capacity,
		event.OwnerID,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// ListPublishedEvents returns all published events ordered by date
// ascending. Event IDs are ULIDs, so the id tie-break preserves
// insertion order for equal dates.
func (r *Repository) ListPublishedEvents(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = $1
		ORDER BY date ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, model.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to list published events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListEventsByOwner returns all events owned by ownerID regardless of
// status, newest first.
func (r *Repository) ListEventsByOwner(ctx context.Context, ownerID string) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by owner: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetEventByID retrieves a single event. No ownership or status check:
// events are publicly readable by id.
func (r *Repository) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by ID: %w", err)
	}

	return event, nil
}

// UpdateEventOwned applies a partial update to an event, but only if
// ownerID matches. The ownership check and the mutation are a single
// conditional UPDATE, so there is no check-then-act window.
func (r *Repository) UpdateEventOwned(ctx context.Context, id, ownerID string, patch model.EventPatch) (*model.Event, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id, ownerID}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Capacity != nil {
		add("capacity", *patch.Capacity)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	query := `
		UPDATE events
		SET ` + strings.Join(set, ", ") + `
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + eventColumns + `
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

// DeleteEventOwned removes an event if ownerID matches. Returns false
// when no row was deleted (missing or not owned by the caller).
func (r *Repository) DeleteEventOwned(ctx context.Context, id, ownerID string) (bool, error) {
	query := `
		DELETE FROM events
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// scanEvent scans a single row into an Event model.
func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.Capacity,
		&event.OwnerID,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// scanEvents collects all rows into a slice.
func scanEvents(rows pgx.Rows) ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
