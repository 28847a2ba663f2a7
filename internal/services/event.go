package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/hasher"
	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"
)

// CreateEventInput carries the fields of a new event
type CreateEventInput struct {
	Title       string
	Description string
	CoverPhoto  string
	ImageURLs   []string
	VideoURLs   []string
	Author      models.Author
	Private     bool
	Password    string
}

// EventChanges is an unchecked update: URLs are appended, non-empty
// title and description replace the stored ones
type EventChanges struct {
	ImageURLs   []string
	VideoURLs   []string
	Title       string
	Description string
}

// EventService handles events, their private-access credential and followers
type EventService struct {
	store  *repository.Store
	hasher *hasher.Hasher
}

// NewEventService creates a new event service
func NewEventService(store *repository.Store, h *hasher.Hasher) *EventService {
	return &EventService{store: store, hasher: h}
}

// CreateEvent stores a new event. A private event needs a password, which
// is hashed; a public event ignores any password given.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, apperr.InvalidInput("Title and description are required")
	}
	if in.Author.Username == "" || in.Author.UserID == "" {
		return nil, apperr.InvalidInput("Author username and userId are required")
	}

	now := time.Now().UTC()
	event := &models.Event{
		Title:       in.Title,
		Description: in.Description,
		CoverPhoto:  in.CoverPhoto,
		ImageURLs:   in.ImageURLs,
		VideoURLs:   in.VideoURLs,
		Author:      in.Author,
		Private:     in.Private,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.Private {
		if strings.TrimSpace(in.Password) == "" {
			return nil, apperr.InvalidInput("Password is required for private events")
		}
		hashed, err := s.hasher.Hash(ctx, in.Password)
		if err != nil {
			return nil, apperr.Internal("Server error while creating event", err)
		}
		event.Password = hashed
	}

	if err := s.store.Events.Create(ctx, event); err != nil {
		return nil, apperr.Internal("Server error while creating event", err)
	}
	return event, nil
}

// ListEvents returns every event, newest first
func (s *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.store.Events.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch events", err)
	}
	return events, nil
}

// ListEventsByUser returns the events authored by userID
func (s *EventService) ListEventsByUser(ctx context.Context, userID string) ([]*models.Event, error) {
	if userID == "" {
		return nil, apperr.InvalidInput("userId is required")
	}
	events, err := s.store.Events.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch events.", err)
	}
	return events, nil
}

// GetEvent loads one event
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	if !s.store.ValidID(eventID) {
		return nil, apperr.NotFound("Event not found")
	}
	event, err := s.store.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Event not found")
		}
		return nil, apperr.Internal("Failed to fetch event", err)
	}
	return event, nil
}

// UpdateEvent applies changes without an ownership check
func (s *EventService) UpdateEvent(ctx context.Context, eventID string, changes EventChanges) (*models.Event, error) {
	if !s.store.ValidID(eventID) {
		return nil, apperr.NotFound("Event not found")
	}

	update := models.EventUpdate{
		AppendImages: changes.ImageURLs,
		AppendVideos: changes.VideoURLs,
	}
	if changes.Title != "" {
		update.Title = &changes.Title
	}
	if changes.Description != "" {
		update.Description = &changes.Description
	}

	return s.update(ctx, eventID, update, "Failed to update event")
}

func (s *EventService) update(ctx context.Context, eventID string, update models.EventUpdate, failure string) (*models.Event, error) {
	event, err := s.store.Events.Update(ctx, eventID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Event not found")
		}
		return nil, apperr.Internal(failure, err)
	}
	return event, nil
}

// DeleteEvent removes an event without an ownership check. Its media
// records are left in place.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	if !s.store.ValidID(eventID) {
		return apperr.NotFound("Event not found")
	}
	if err := s.store.Events.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Event not found")
		}
		return apperr.Internal("Failed to delete event", err)
	}
	return nil
}

// GetEventMedia returns the image or video URL list of an event.
// mediaType is photo, image or video in any case.
func (s *EventService) GetEventMedia(ctx context.Context, eventID, mediaType string) ([]string, error) {
	if eventID == "" || mediaType == "" {
		return nil, apperr.InvalidInput("Missing required parameters: eventId and mediaType")
	}

	var video bool
	switch strings.ToLower(mediaType) {
	case "video":
		video = true
	case "photo", "image":
	default:
		return nil, apperr.InvalidInput("Invalid mediaType provided. Use 'photo' (or 'image') or 'video'.")
	}

	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if video {
		return event.VideoURLs, nil
	}
	return event.ImageURLs, nil
}

// FollowEvent adds userID to the event's followers
func (s *EventService) FollowEvent(ctx context.Context, eventID, userID string) (*models.Event, error) {
	if userID == "" {
		return nil, apperr.InvalidInput("userId is required")
	}
	if !s.store.ValidID(eventID) {
		return nil, apperr.NotFound("Event not found")
	}

	event, err := s.store.Events.AddFollower(ctx, eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("Event not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.Conflict("User already following this event")
		}
		return nil, apperr.Internal("Failed to follow event", err)
	}
	return event, nil
}

// UnfollowEvent removes userID from the event's followers if present
func (s *EventService) UnfollowEvent(ctx context.Context, eventID, userID string) (*models.Event, error) {
	if userID == "" {
		return nil, apperr.InvalidInput("userId is required")
	}
	if !s.store.ValidID(eventID) {
		return nil, apperr.NotFound("Event not found")
	}

	event, err := s.store.Events.RemoveFollower(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Event not found")
		}
		return nil, apperr.Internal("Failed to unfollow event", err)
	}
	return event, nil
}

// Authenticate grants access to a private event for this call only
func (s *EventService) Authenticate(ctx context.Context, eventID, password string) (*models.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Private {
		return nil, apperr.InvalidInput("Event is not password protected")
	}

	ok, err := s.hasher.Verify(ctx, password, event.Password)
	if err != nil {
		if errors.Is(err, hasher.ErrNoCredential) {
			return nil, apperr.InvalidInput("Event is not password protected")
		}
		return nil, apperr.Internal("Failed to authenticate event", err)
	}
	if !ok {
		return nil, apperr.InvalidCredentials("Incorrect password")
	}
	return event, nil
}

// UpdatePassword replaces a private event's credential. The caller must
// present the event's author identity.
func (s *EventService) UpdatePassword(ctx context.Context, eventID, newPassword string, author models.Author) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Author != author {
		return apperr.Forbidden("Unauthorized: Only the creator can update the password")
	}
	if strings.TrimSpace(newPassword) == "" {
		return apperr.InvalidInput("New password is required")
	}
	if !event.Private {
		return apperr.InvalidInput("Event is not password protected")
	}

	hashed, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return apperr.Internal("Failed to update event password", err)
	}
	if err := s.store.Events.SetPassword(ctx, eventID, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Event not found")
		}
		return apperr.Internal("Failed to update event password", err)
	}
	return nil
}

// UpdateEventMedia appends URLs. Only the event's author may call it.
func (s *EventService) UpdateEventMedia(ctx context.Context, eventID string, newImages, newVideos []string, userID string) (*models.Event, error) {
	if _, err := s.authorize(ctx, eventID, userID); err != nil {
		return nil, err
	}
	update := models.EventUpdate{AppendImages: newImages, AppendVideos: newVideos}
	return s.update(ctx, eventID, update, "Server error while updating event media")
}

// UpdateEventCoverPhoto replaces the cover photo. Only the event's author may call it.
func (s *EventService) UpdateEventCoverPhoto(ctx context.Context, eventID, newCoverPhoto, userID string) (*models.Event, error) {
	if _, err := s.authorize(ctx, eventID, userID); err != nil {
		return nil, err
	}
	update := models.EventUpdate{CoverPhoto: &newCoverPhoto}
	return s.update(ctx, eventID, update, "Server error while updating cover photo")
}

func (s *EventService) authorize(ctx context.Context, eventID, userID string) (*models.Event, error) {
	if eventID == "" {
		return nil, apperr.InvalidInput("eventId is required")
	}
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if userID == "" || event.Author.UserID != userID {
		return nil, apperr.Forbidden("Not authorized to update this event.")
	}
	return event, nil
}
