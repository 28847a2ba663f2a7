package handlers

import (
	"context"

	"event-media-backend/internal/models"
	"event-media-backend/internal/services"
	"event-media-backend/internal/storage"
)

// UserService is what the user handler needs from services.UserService
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error)
	ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error)
	FollowUser(ctx context.Context, userID, followerID string) error
	UnfollowUser(ctx context.Context, userID, followerID string) error
}

// AdminService is what the admin handler needs from services.AdminService
type AdminService interface {
	ListUsers(ctx context.Context, adminID string, page, limit int) (*services.UserPage, error)
	VerifyUser(ctx context.Context, adminID, userID string) (*models.User, error)
	UnverifyUser(ctx context.Context, adminID, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, adminID, userID string) error
}

// EventService is what the event handler needs from services.EventService
type EventService interface {
	CreateEvent(ctx context.Context, in services.CreateEventInput) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	ListEventsByUser(ctx context.Context, userID string) ([]*models.Event, error)
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	UpdateEvent(ctx context.Context, eventID string, changes services.EventChanges) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	GetEventMedia(ctx context.Context, eventID, mediaType string) ([]string, error)
	FollowEvent(ctx context.Context, eventID, userID string) (*models.Event, error)
	UnfollowEvent(ctx context.Context, eventID, userID string) (*models.Event, error)
	Authenticate(ctx context.Context, eventID, password string) (*models.Event, error)
	UpdatePassword(ctx context.Context, eventID, newPassword string, author models.Author) error
	UpdateEventMedia(ctx context.Context, eventID string, newImages, newVideos []string, userID string) (*models.Event, error)
	UpdateEventCoverPhoto(ctx context.Context, eventID, newCoverPhoto, userID string) (*models.Event, error)
}

// MediaService is what the media handler needs from services.MediaService
type MediaService interface {
	Upload(ctx context.Context, eventID, uploadedBy string, files []services.UploadFile) ([]*models.Media, error)
	ListByEvent(ctx context.Context, eventID string) ([]*models.Media, error)
	Delete(ctx context.Context, mediaID string) error
	PresignUpload(ctx context.Context, eventID, filename, contentType string) (*storage.PresignedUpload, error)
}

// NotificationService lists a user's notifications
type NotificationService interface {
	List(ctx context.Context, recipient string, limit int) ([]*models.Notification, error)
}
