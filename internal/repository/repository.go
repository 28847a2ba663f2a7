// Package repository declares the persistence contracts. Backends live in
// the memory, postgres and mongo subpackages.
package repository

import (
	"context"
	"errors"

	"event-media-backend/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint or set membership
	// would be violated
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository persists users and their follow edges
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
	UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error)
	SetVerified(ctx context.Context, id string, verified bool) (*models.User, error)
	VerifyByUsername(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	// AddFollower records followerID in userID's followers and userID in
	// followerID's following. Repeated calls are no-ops.
	AddFollower(ctx context.Context, userID, followerID string) error
	// RemoveFollower removes both directional edges. Absent edges are no-ops.
	RemoveFollower(ctx context.Context, userID, followerID string) error
}

// EventRepository persists events
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	ListByAuthor(ctx context.Context, userID string) ([]*models.Event, error)
	Update(ctx context.Context, id string, update models.EventUpdate) (*models.Event, error)
	SetPassword(ctx context.Context, id, hashedPassword string) error
	Delete(ctx context.Context, id string) error
	// AddFollower returns ErrDuplicate when userID already follows the event
	AddFollower(ctx context.Context, eventID, userID string) (*models.Event, error)
	RemoveFollower(ctx context.Context, eventID, userID string) (*models.Event, error)
}

// MediaRepository persists media records
type MediaRepository interface {
	CreateMany(ctx context.Context, media []*models.Media) error
	ListByEvent(ctx context.Context, eventID string) ([]*models.Media, error)
	All(ctx context.Context) ([]*models.Media, error)
	// Delete removes the record and returns it
	Delete(ctx context.Context, id string) (*models.Media, error)
}

// NotificationRepository persists notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// ListByRecipient returns newest first; limit <= 0 returns all
	ListByRecipient(ctx context.Context, recipient string, limit int) ([]*models.Notification, error)
	All(ctx context.Context) ([]*models.Notification, error)
	Delete(ctx context.Context, id string) error
}

// AdminRepository persists admin accounts
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Store groups the collections of one backend
type Store struct {
	Users         UserRepository
	Events        EventRepository
	Media         MediaRepository
	Notifications NotificationRepository
	Admins        AdminRepository

	// ValidID reports whether id is well formed for this backend
	ValidID func(id string) bool
	// Close releases the backend's connections
	Close func(ctx context.Context) error
}
