package handlers

import (
	"net/http"

	"event-media-backend/internal/models"
	"event-media-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest is the body of POST /events/create
type CreateEventRequest struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description" validate:"required"`
	CoverPhoto  string        `json:"coverPhoto"`
	ImageURLs   []string      `json:"imageUrls"`
	VideoURLs   []string      `json:"videoUrls"`
	Author      models.Author `json:"author"`
	Private     bool          `json:"private"`
	Password    string        `json:"password"`
}

// UpdateEventRequest is the body of PUT /{eventId}
type UpdateEventRequest struct {
	ImageURLs   []string `json:"imageUrls"`
	VideoURLs   []string `json:"videoUrls"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// EventUserRequest carries the user following or unfollowing an event
type EventUserRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// AuthenticateRequest is the body of POST /events/{eventId}/authenticate
type AuthenticateRequest struct {
	Password string `json:"password"`
}

// UpdatePasswordRequest is the body of PATCH /{eventId}/update-password.
// The author is compared with the stored one, so it is not validated here.
type UpdatePasswordRequest struct {
	NewPassword string        `json:"newPassword"`
	Author      models.Author `json:"author" validate:"-"`
}

// UpdateMediaRequest is the body of PATCH /events/updateMedia
type UpdateMediaRequest struct {
	EventID   string   `json:"eventId" validate:"required"`
	NewImages []string `json:"newImages"`
	NewVideos []string `json:"newVideos"`
	UserID    string   `json:"userId"`
}

// UpdateCoverPhotoRequest is the body of PATCH /events/updateCoverPhoto
type UpdateCoverPhotoRequest struct {
	EventID       string `json:"eventId" validate:"required"`
	NewCoverPhoto string `json:"newCoverPhoto" validate:"required"`
	UserID        string `json:"userId"`
}

type eventResponse struct {
	Message string        `json:"message"`
	Event   *models.Event `json:"event"`
}

// CreateEvent handles POST /events/create
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), services.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		CoverPhoto:  req.CoverPhoto,
		ImageURLs:   req.ImageURLs,
		VideoURLs:   req.VideoURLs,
		Author:      req.Author,
		Private:     req.Private,
		Password:    req.Password,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().
		Str("event_id", event.ID).
		Str("author_id", event.Author.UserID).
		Bool("private", event.Private).
		Msg("Event created")

	respondJSON(w, http.StatusCreated, eventResponse{Message: "Event created successfully", Event: event})
}

// ListEvents handles GET /get-events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListEvents(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// ListEventsByUser handles GET /events/user/{userId}
func (h *EventHandler) ListEventsByUser(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListEventsByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// GetEvent handles GET and POST /event/{eventId}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.GetEvent(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PUT /{eventId}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), chi.URLParam(r, "eventId"), services.EventChanges{
		ImageURLs:   req.ImageURLs,
		VideoURLs:   req.VideoURLs,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, eventResponse{Message: "Event updated successfully", Event: event})
}

// DeleteEvent handles DELETE /{eventId}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	if err := h.eventService.DeleteEvent(r.Context(), eventID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().Str("event_id", eventID).Msg("Event deleted")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}

// GetEventMedia handles GET /event-media?eventId&mediaType
func (h *EventHandler) GetEventMedia(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	media, err := h.eventService.GetEventMedia(r.Context(), q.Get("eventId"), q.Get("mediaType"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"media": media})
}

// FollowEvent handles POST /{eventId}/follow
func (h *EventHandler) FollowEvent(w http.ResponseWriter, r *http.Request) {
	var req EventUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.eventService.FollowEvent(r.Context(), chi.URLParam(r, "eventId"), req.UserID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, eventResponse{Message: "User followed the event", Event: event})
}

// UnfollowEvent handles POST /{eventId}/unfollow
func (h *EventHandler) UnfollowEvent(w http.ResponseWriter, r *http.Request) {
	var req EventUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.eventService.UnfollowEvent(r.Context(), chi.URLParam(r, "eventId"), req.UserID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, eventResponse{Message: "User unfollowed the event", Event: event})
}

// Authenticate handles POST /events/{eventId}/authenticate
func (h *EventHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthenticateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	eventID := chi.URLParam(r, "eventId")

	event, err := h.eventService.Authenticate(r.Context(), eventID, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// UpdatePassword handles PATCH /{eventId}/update-password
func (h *EventHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req UpdatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	eventID := chi.URLParam(r, "eventId")

	if err := h.eventService.UpdatePassword(r.Context(), eventID, req.NewPassword, req.Author); err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().Str("event_id", eventID).Msg("Event password updated")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// UpdateMedia handles PATCH /events/updateMedia
func (h *EventHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	var req UpdateMediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.eventService.UpdateEventMedia(r.Context(), req.EventID, req.NewImages, req.NewVideos, callerID(r, req.UserID))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, eventResponse{Message: "Event media updated successfully", Event: event})
}

// UpdateCoverPhoto handles PATCH /events/updateCoverPhoto
func (h *EventHandler) UpdateCoverPhoto(w http.ResponseWriter, r *http.Request) {
	var req UpdateCoverPhotoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.eventService.UpdateEventCoverPhoto(r.Context(), req.EventID, req.NewCoverPhoto, callerID(r, req.UserID))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, eventResponse{Message: "Cover photo updated successfully", Event: event})
}
