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

const mediaColumns = `id, url, type, event_id, uploaded_by, created_at`

// MediaRepository handles database operations for media records
type MediaRepository struct {
	db *pgxpool.Pool
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{db: db}
}

func scanMedia(row pgx.Row) (*models.Media, error) {
	var m models.Media
	if err := row.Scan(&m.ID, &m.URL, &m.Type, &m.EventID, &m.UploadedBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMany inserts all records in one batch; either all are stored or none
func (r *MediaRepository) CreateMany(ctx context.Context, media []*models.Media) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, m := range media {
			if m.ID == "" {
				m.ID = newID()
			}
			batch.Queue(`
				INSERT INTO media (id, url, type, event_id, uploaded_by, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, m.ID, m.URL, m.Type, m.EventID, m.UploadedBy, m.CreatedAt)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to create media: %w", err)
		}
		return nil
	})
}

func (r *MediaRepository) list(ctx context.Context, query string, args ...any) ([]*models.Media, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	defer rows.Close()

	media := make([]*models.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media: %w", err)
	}
	return media, nil
}

// ListByEvent retrieves media for an event in upload order
func (r *MediaRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE event_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, eventID)
}

// All retrieves every media record
func (r *MediaRepository) All(ctx context.Context) ([]*models.Media, error) {
	return r.list(ctx, `SELECT `+mediaColumns+` FROM media ORDER BY created_at, id`)
}

// Delete removes a media record and returns it
func (r *MediaRepository) Delete(ctx context.Context, id string) (*models.Media, error) {
	m, err := scanMedia(r.db.QueryRow(ctx, `DELETE FROM media WHERE id = $1 RETURNING `+mediaColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete media: %w", err)
	}
	return m, nil
}
