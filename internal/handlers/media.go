package handlers

import (
	"mime/multipart"
	"net/http"

	"event-media-backend/internal/models"
	"event-media-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const defaultMaxUploadMB = 50

// MediaHandler handles media uploads and records
type MediaHandler struct {
	mediaService MediaService
	maxUpload    int64
}

// NewMediaHandler creates a new media handler. maxUploadMB bounds the
// multipart body of one upload request.
func NewMediaHandler(mediaService MediaService, maxUploadMB int64) *MediaHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = defaultMaxUploadMB
	}
	return &MediaHandler{
		mediaService: mediaService,
		maxUpload:    maxUploadMB << 20,
	}
}

// PresignRequest is the body of POST /api/media/presign
type PresignRequest struct {
	EventID     string `json:"eventId" validate:"required"`
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

type mediaResponse struct {
	Message string          `json:"message"`
	Media   []*models.Media `json:"media"`
}

// Upload handles POST /api/media/upload (multipart: eventId, userId, files)
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var headers []*multipart.FileHeader
	for _, fhs := range r.MultipartForm.File {
		headers = append(headers, fhs...)
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondError(w, "Failed to read uploaded file", http.StatusBadRequest)
			return
		}
		defer f.Close()

		files = append(files, services.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	eventID := r.FormValue("eventId")
	uploadedBy := callerID(r, r.FormValue("userId"))

	media, err := h.mediaService.Upload(r.Context(), eventID, uploadedBy, files)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, mediaResponse{Message: "Media uploaded successfully", Media: media})
}

// ListByEvent handles GET /api/media/{eventId}
func (h *MediaHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	media, err := h.mediaService.ListByEvent(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, media)
}

// Delete handles DELETE /api/media/{mediaId}/delete
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaId")
	if err := h.mediaService.Delete(r.Context(), mediaID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().Str("media_id", mediaID).Msg("Media deleted")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Media deleted successfully"})
}

// Presign handles POST /api/media/presign
func (h *MediaHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req PresignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	upload, err := h.mediaService.PresignUpload(r.Context(), req.EventID, req.Filename, req.ContentType)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().
		Str("event_id", req.EventID).
		Str("key", upload.Key).
		Msg("Pre-signed URL generated")

	respondJSON(w, http.StatusOK, upload)
}
