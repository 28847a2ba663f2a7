package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"
)

// EnsureAdmin creates an admin account unless one with the email exists.
// created reports whether a new record was written.
func (s *AdminService) EnsureAdmin(ctx context.Context, name, email, password string) (admin *models.Admin, created bool, err error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, false, apperr.InvalidInput("name, email and password are required")
	}

	existing, err := s.store.Admins.GetByEmail(ctx, email)
	if err == nil {
		existing.Password = ""
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, apperr.Internal("failed to look up admin", err)
	}

	hashed, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, false, apperr.Internal("failed to hash password", err)
	}

	admin = &models.Admin{
		Name:      name,
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with another provisioner
			existing, err := s.store.Admins.GetByEmail(ctx, email)
			if err != nil {
				return nil, false, apperr.Internal("failed to look up admin", err)
			}
			existing.Password = ""
			return existing, false, nil
		}
		return nil, false, apperr.Internal("failed to create admin", err)
	}

	admin.Password = ""
	return admin, true, nil
}

// VerifyUserByName marks the oldest user with the given display name as
// verified. Running it again is a no-op.
func (s *AdminService) VerifyUserByName(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.InvalidInput("username is required")
	}

	user, err := s.store.Users.VerifyByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, apperr.Internal("failed to verify user", err)
	}
	user.Password = ""
	return user, nil
}
