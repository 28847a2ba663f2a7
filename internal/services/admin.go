package services

import (
	"context"
	"errors"
	"math"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/hasher"
	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserPage is one page of the admin user listing
type UserPage struct {
	Users       []*models.User `json:"users"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalUsers  int            `json:"totalUsers"`
}

// AdminService implements admin-gated user management. Admin identity is
// checked against the admins collection only.
type AdminService struct {
	store  *repository.Store
	hasher *hasher.Hasher
}

// NewAdminService creates a new admin service
func NewAdminService(store *repository.Store, h *hasher.Hasher) *AdminService {
	return &AdminService{store: store, hasher: h}
}

func (s *AdminService) requireAdmin(ctx context.Context, adminID string) error {
	_, err := s.store.Admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Forbidden("Access denied. Admins only.")
		}
		return apperr.Internal("Server error while checking admin", err)
	}
	return nil
}

// ListUsers pages through users, newest first. limit is capped at 100.
func (s *AdminService) ListUsers(ctx context.Context, adminID string, page, limit int) (*UserPage, error) {
	if !s.store.ValidID(adminID) {
		return nil, apperr.InvalidInput("Invalid Admin ID")
	}
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	// keep (page-1)*limit from overflowing; such a page is empty anyway
	if page-1 > math.MaxInt/limit {
		page = math.MaxInt/limit + 1
	}

	users, err := s.store.Users.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, apperr.Internal("Server error while retrieving users.", err)
	}
	total, err := s.store.Users.Count(ctx)
	if err != nil {
		return nil, apperr.Internal("Server error while retrieving users.", err)
	}

	for _, u := range users {
		u.Password = ""
	}

	return &UserPage{
		Users:       users,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		TotalUsers:  total,
	}, nil
}

// VerifyUser sets the verified flag
func (s *AdminService) VerifyUser(ctx context.Context, adminID, userID string) (*models.User, error) {
	return s.setVerified(ctx, adminID, userID, true)
}

// UnverifyUser clears the verified flag
func (s *AdminService) UnverifyUser(ctx context.Context, adminID, userID string) (*models.User, error) {
	return s.setVerified(ctx, adminID, userID, false)
}

func (s *AdminService) setVerified(ctx context.Context, adminID, userID string, verified bool) (*models.User, error) {
	if !s.store.ValidID(adminID) || !s.store.ValidID(userID) {
		return nil, apperr.InvalidInput("Invalid Admin ID or User ID")
	}
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	user, err := s.store.Users.SetVerified(ctx, userID, verified)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, apperr.Internal("Server error while updating user.", err)
	}
	user.Password = ""
	return user, nil
}

// DeleteUser removes a user. An admin cannot delete its own id.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID string) error {
	if !s.store.ValidID(adminID) || !s.store.ValidID(userID) {
		return apperr.InvalidInput("Invalid Admin ID or User ID")
	}
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if adminID == userID {
		return apperr.InvalidInput("You cannot delete your own account.")
	}

	if err := s.store.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found.")
		}
		return apperr.Internal("Server error while deleting user.", err)
	}
	return nil
}
