package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"
	"event-media-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UploadFile is one file of a multipart upload
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService stores uploaded files and their media records
type MediaService struct {
	store   *repository.Store
	storage storage.Storage
}

// NewMediaService creates a new media service
func NewMediaService(store *repository.Store, st storage.Storage) *MediaService {
	return &MediaService{store: store, storage: st}
}

// objectKey builds events/<eventId>/<uuid><ext>
func objectKey(eventID, filename string) string {
	return fmt.Sprintf("events/%s/%s%s", eventID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
}

func mediaType(contentType string) string {
	if strings.HasPrefix(contentType, "image") {
		return models.MediaImage
	}
	return models.MediaVideo
}

func (s *MediaService) requireEvent(ctx context.Context, eventID string) error {
	if !s.store.ValidID(eventID) {
		return apperr.NotFound("Event not found")
	}
	if _, err := s.store.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Event not found")
		}
		return apperr.Internal("Error uploading media", err)
	}
	return nil
}

// Upload stores every file and inserts their records in one batch. If any
// step fails the files already written are removed.
func (s *MediaService) Upload(ctx context.Context, eventID, uploadedBy string, files []UploadFile) ([]*models.Media, error) {
	if eventID == "" || len(files) == 0 {
		return nil, apperr.InvalidInput("Event ID and media files are required")
	}
	if uploadedBy == "" {
		return nil, apperr.InvalidInput("Uploader userId is required")
	}
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	media := make([]*models.Media, 0, len(files))
	keys := make([]string, 0, len(files))

	for _, f := range files {
		key := objectKey(eventID, f.Filename)
		blob, err := s.storage.Put(ctx, key, f.ContentType, f.Body, f.Size)
		if err != nil {
			s.discard(ctx, keys)
			return nil, apperr.Internal("Error uploading media", err)
		}
		keys = append(keys, blob.Key)
		media = append(media, &models.Media{
			URL:        blob.URL,
			Type:       mediaType(f.ContentType),
			EventID:    eventID,
			UploadedBy: uploadedBy,
			CreatedAt:  now,
		})
	}

	if err := s.store.Media.CreateMany(ctx, media); err != nil {
		s.discard(ctx, keys)
		return nil, apperr.Internal("Error uploading media", err)
	}

	log.Info().
		Str("event_id", eventID).
		Str("uploaded_by", uploadedBy).
		Int("count", len(media)).
		Msg("Media uploaded")

	return media, nil
}

func (s *MediaService) discard(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to remove uploaded file")
		}
	}
}

// ListByEvent returns an event's media records, oldest first
func (s *MediaService) ListByEvent(ctx context.Context, eventID string) ([]*models.Media, error) {
	media, err := s.store.Media.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Internal("Error retrieving media", err)
	}
	if len(media) == 0 {
		return nil, apperr.NotFound("No media found for this event")
	}
	return media, nil
}

// Delete removes a media record. Removing the stored file is best-effort.
func (s *MediaService) Delete(ctx context.Context, mediaID string) error {
	if !s.store.ValidID(mediaID) {
		return apperr.NotFound("Media not found")
	}

	m, err := s.store.Media.Delete(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Media not found")
		}
		return apperr.Internal("Error deleting media", err)
	}

	if key, ok := s.storage.KeyFromURL(m.URL); ok {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("media_id", mediaID).Str("key", key).Msg("Failed to remove media file")
		}
	}
	return nil
}

// PresignUpload returns a direct-upload URL for one file of an event
func (s *MediaService) PresignUpload(ctx context.Context, eventID, filename, contentType string) (*storage.PresignedUpload, error) {
	if eventID == "" || filename == "" || contentType == "" {
		return nil, apperr.InvalidInput("eventId, filename and contentType are required")
	}
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	upload, err := s.storage.Presign(ctx, objectKey(eventID, filename), contentType)
	if err != nil {
		if errors.Is(err, storage.ErrPresignUnsupported) {
			return nil, apperr.InvalidInput("Presigned uploads require S3 storage")
		}
		return nil, apperr.Internal("Failed to generate upload URL", err)
	}
	return upload, nil
}
