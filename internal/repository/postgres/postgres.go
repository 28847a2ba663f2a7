// Package postgres implements the repositories on PostgreSQL using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"event-media-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          TEXT PRIMARY KEY,
	username    TEXT NOT NULL,
	email       TEXT NOT NULL UNIQUE,
	password    TEXT NOT NULL,
	role        TEXT NOT NULL DEFAULT 'standard',
	verified    BOOLEAN NOT NULL DEFAULT FALSE,
	profile     JSONB NOT NULL DEFAULT '{}',
	followers   TEXT[] NOT NULL DEFAULT '{}',
	following   TEXT[] NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS events (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL,
	cover_photo      TEXT NOT NULL DEFAULT '',
	image_urls       TEXT[] NOT NULL DEFAULT '{}',
	video_urls       TEXT[] NOT NULL DEFAULT '{}',
	author_username  TEXT NOT NULL,
	author_user_id   TEXT NOT NULL,
	private          BOOLEAN NOT NULL DEFAULT FALSE,
	password         TEXT,
	followers        TEXT[] NOT NULL DEFAULT '{}',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS events_author_user_id ON events (author_user_id);

CREATE TABLE IF NOT EXISTS media (
	id           TEXT PRIMARY KEY,
	url          TEXT NOT NULL,
	type         TEXT NOT NULL CHECK (type IN ('image', 'video')),
	event_id     TEXT NOT NULL,
	uploaded_by  TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS media_event_id ON media (event_id);

CREATE TABLE IF NOT EXISTS notifications (
	id          TEXT PRIMARY KEY,
	recipient   TEXT NOT NULL,
	sender      TEXT NOT NULL,
	type        TEXT NOT NULL,
	message     TEXT NOT NULL,
	link        TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS notifications_recipient ON notifications (recipient, created_at DESC);

CREATE TABLE IF NOT EXISTS admins (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL UNIQUE,
	password    TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// New connects to PostgreSQL, makes sure the tables exist and returns the store
func New(ctx context.Context, dsn string) (*repository.Store, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &repository.Store{
		Users:         NewUserRepository(db),
		Events:        NewEventRepository(db),
		Media:         NewMediaRepository(db),
		Notifications: NewNotificationRepository(db),
		Admins:        NewAdminRepository(db),
		ValidID:       ValidID,
		Close: func(context.Context) error {
			db.Close()
			return nil
		},
	}, nil
}

// ValidID accepts UUIDs, the ids this backend generates
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func newID() string {
	return uuid.New().String()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
