package postgres

import (
	"context"
	"errors"
	"fmt"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, title, description, cover_photo, image_urls, video_urls,
	author_username, author_user_id, private, COALESCE(password, ''), followers, created_at, updated_at`

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.CoverPhoto,
		&event.ImageURLs, &event.VideoURLs,
		&event.Author.Username, &event.Author.UserID,
		&event.Private, &event.Password, &event.Followers,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) getOne(ctx context.Context, what, query string, args ...any) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", what, err)
	}
	return event, nil
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = newID()
	}
	event.ImageURLs = orEmpty(event.ImageURLs)
	event.VideoURLs = orEmpty(event.VideoURLs)
	event.Followers = orEmpty(event.Followers)

	var password *string
	if event.Password != "" {
		password = &event.Password
	}

	query := `
		INSERT INTO events (id, title, description, cover_photo, image_urls, video_urls,
			author_username, author_user_id, private, password, followers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		event.ID, event.Title, event.Description, event.CoverPhoto, event.ImageURLs, event.VideoURLs,
		event.Author.Username, event.Author.UserID, event.Private, password, event.Followers,
		event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return r.getOne(ctx, "get event", `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

// List returns all events newest first
func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
}

// ListByAuthor returns the events owned by userID
func (r *EventRepository) ListByAuthor(ctx context.Context, userID string) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE author_user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// Update appends media and replaces the scalar fields that are set
func (r *EventRepository) Update(ctx context.Context, id string, update models.EventUpdate) (*models.Event, error) {
	query := `
		UPDATE events SET
			image_urls  = image_urls || $2::text[],
			video_urls  = video_urls || $3::text[],
			title       = COALESCE($4, title),
			description = COALESCE($5, description),
			cover_photo = COALESCE($6, cover_photo),
			updated_at  = now()
		WHERE id = $1
		RETURNING ` + eventColumns
	return r.getOne(ctx, "update event", query,
		id, orEmpty(update.AppendImages), orEmpty(update.AppendVideos),
		update.Title, update.Description, update.CoverPhoto,
	)
}

// SetPassword replaces the stored event credential
func (r *EventRepository) SetPassword(ctx context.Context, id, hashedPassword string) error {
	result, err := r.db.Exec(ctx, `UPDATE events SET password = $2, updated_at = now() WHERE id = $1`, id, hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to update event password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete deletes an event by ID
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddFollower appends userID unless already present
func (r *EventRepository) AddFollower(ctx context.Context, eventID, userID string) (*models.Event, error) {
	query := `
		UPDATE events SET followers = array_append(followers, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(followers))
		RETURNING ` + eventColumns
	event, err := r.getOne(ctx, "follow event", query, eventID, userID)
	if !errors.Is(err, repository.ErrNotFound) {
		return event, err
	}

	// no row matched: either the event is gone or userID already follows it
	if _, err := r.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return nil, repository.ErrDuplicate
}

// RemoveFollower drops userID from the followers
func (r *EventRepository) RemoveFollower(ctx context.Context, eventID, userID string) (*models.Event, error) {
	query := `
		UPDATE events SET followers = array_remove(followers, $2), updated_at = now()
		WHERE id = $1
		RETURNING ` + eventColumns
	return r.getOne(ctx, "unfollow event", query, eventID, userID)
}
