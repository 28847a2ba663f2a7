package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/middleware"
	"event-media-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService         UserService
	notificationService NotificationService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, notificationService NotificationService) *UserHandler {
	return &UserHandler{
		userService:         userService,
		notificationService: notificationService,
	}
}

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

// FollowUserRequest is the body of POST /users/{userId}/follow
type FollowUserRequest struct {
	FollowerID string `json:"followerId" validate:"required"`
}

// Register handles POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User registered")
	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /login. A wrong password is a 400 on this route.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if apperr.Is(err, apperr.KindInvalidCredentials) {
			log.Warn().Str("email", req.Email).Msg("Invalid password attempt")
			respondError(w, apperr.Message(err), http.StatusBadRequest)
			return
		}
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// GetUser handles GET /users/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CheckEmail handles GET /users/check-email?email=
func (h *UserHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	exists, err := h.userService.CheckEmailExists(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// UpdateProfile handles PUT /users/{userId}/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if !decodeJSON(w, r, &profile) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), chi.URLParam(r, "userId"), profile)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetFollowers handles GET /users/{userId}/followers
func (h *UserHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	followers, err := h.userService.ListFollowers(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"followers": followers})
}

// GetFollowing handles GET /users/{userId}/following
func (h *UserHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	following, err := h.userService.ListFollowing(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"following": following})
}

// Follow handles POST /users/{userId}/follow
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	var req FollowUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := chi.URLParam(r, "userId")

	if err := h.userService.FollowUser(r.Context(), userID, req.FollowerID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("User %s is now following %s", req.FollowerID, userID),
	})
}

// Unfollow handles POST /users/{userId}/unfollow/{followerId}
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	followerID := chi.URLParam(r, "followerId")

	if err := h.userService.UnfollowUser(r.Context(), userID, followerID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("User %s has unfollowed %s", followerID, userID),
	})
}

// GetNotifications handles GET /users/{userId}/notifications. Users can
// only read their own.
func (h *UserHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if middleware.GetUserID(r.Context()) != userID {
		respondError(w, "You can only read your own notifications", http.StatusForbidden)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil {
			limit = parsedLimit
		}
	}

	notifications, err := h.notificationService.List(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}
