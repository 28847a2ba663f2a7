package postgres

import (
	"context"
	"errors"
	"fmt"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, password, role, verified, profile, followers, following, created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.Role,
		&user.Verified, &user.Profile, &user.Followers, &user.Following, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) getOne(ctx context.Context, what, query string, args ...any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", what, err)
	}
	return user, nil
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// Create inserts a user; a taken email yields repository.ErrDuplicate
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	user.Followers = orEmpty(user.Followers)
	user.Following = orEmpty(user.Following)

	query := `
		INSERT INTO users (id, username, email, password, role, verified, profile, followers, following, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.Password, user.Role,
		user.Verified, user.Profile, user.Followers, user.Following, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by exact email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByIDs retrieves the users that exist among ids
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, orEmpty(ids))
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// List returns users newest first
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// UpdateProfile replaces the profile attributes
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error) {
	query := `UPDATE users SET profile = $2 WHERE id = $1 RETURNING ` + userColumns
	return r.getOne(ctx, "update profile", query, id, profile)
}

// SetVerified toggles the verified flag
func (r *UserRepository) SetVerified(ctx context.Context, id string, verified bool) (*models.User, error) {
	query := `UPDATE users SET verified = $2 WHERE id = $1 RETURNING ` + userColumns
	return r.getOne(ctx, "set verified", query, id, verified)
}

// VerifyByUsername marks the first user with the given username as verified
func (r *UserRepository) VerifyByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		UPDATE users SET verified = TRUE
		WHERE id = (SELECT id FROM users WHERE username = $1 ORDER BY created_at LIMIT 1)
		RETURNING ` + userColumns
	return r.getOne(ctx, "verify user by username", query, username)
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddFollower adds both directional edges in one transaction
func (r *UserRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE users SET followers = array_append(followers, $2)
			WHERE id = $1 AND NOT ($2 = ANY(followers))
		`, userID, followerID)
		if err != nil {
			return fmt.Errorf("failed to add follower: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET following = array_append(following, $1)
			WHERE id = $2 AND NOT ($1 = ANY(following))
		`, userID, followerID)
		if err != nil {
			return fmt.Errorf("failed to add following: %w", err)
		}
		return nil
	})
}

// RemoveFollower removes both directional edges in one transaction
func (r *UserRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `UPDATE users SET followers = array_remove(followers, $2) WHERE id = $1`, userID, followerID)
		if err != nil {
			return fmt.Errorf("failed to remove follower: %w", err)
		}

		_, err = tx.Exec(ctx, `UPDATE users SET following = array_remove(following, $1) WHERE id = $2`, userID, followerID)
		if err != nil {
			return fmt.Errorf("failed to remove following: %w", err)
		}
		return nil
	})
}
