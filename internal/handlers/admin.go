package handlers

import (
	"net/http"
	"strconv"

	"event-media-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// AdminHandler handles admin-gated user management
type AdminHandler struct {
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// AdminRequest identifies the acting admin
type AdminRequest struct {
	AdminID string `json:"adminId" validate:"required"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// ListUsers handles GET /admin/users?adminId&page&limit
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.adminService.ListUsers(r.Context(), q.Get("adminId"), queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// VerifyUser handles PATCH /admin/users/{userId}/verify
func (h *AdminHandler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	var req AdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.adminService.VerifyUser(r.Context(), req.AdminID, chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().Str("admin_id", req.AdminID).Str("user_id", user.ID).Msg("User verified")
	respondJSON(w, http.StatusOK, userResponse{Message: "User verified successfully", User: user})
}

// UnverifyUser handles PATCH /admin/users/{userId}/unverify
func (h *AdminHandler) UnverifyUser(w http.ResponseWriter, r *http.Request) {
	var req AdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.adminService.UnverifyUser(r.Context(), req.AdminID, chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().Str("admin_id", req.AdminID).Str("user_id", user.ID).Msg("User unverified")
	respondJSON(w, http.StatusOK, userResponse{Message: "User unverified successfully", User: user})
}

// DeleteUser handles DELETE /admin/users/{userId}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var req AdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := chi.URLParam(r, "userId")

	if err := h.adminService.DeleteUser(r.Context(), req.AdminID, userID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	log.Info().Str("admin_id", req.AdminID).Str("user_id", userID).Msg("User deleted")
	respondJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully."})
}
