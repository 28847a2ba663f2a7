package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/hasher"
	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/errgroup"
)

const defaultTokenTTL = 24 * time.Hour

// Claims is what a validated token says about its bearer
type Claims struct {
	UserID string
	Role   string
}

// UserService handles registration, login, profiles and the user follow graph
type UserService struct {
	store     *repository.Store
	hasher    *hasher.Hasher
	notifier  *NotificationService
	jwtSecret string
	jwtTTL    time.Duration
	origin    string
}

// NewUserService creates a new user service. origin is the client base URL
// used in notification links.
func NewUserService(
	store *repository.Store,
	h *hasher.Hasher,
	notifier *NotificationService,
	jwtSecret string,
	jwtTTL time.Duration,
	origin string,
) *UserService {
	if jwtTTL <= 0 {
		jwtTTL = defaultTokenTTL
	}
	return &UserService{
		store:     store,
		hasher:    h,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		origin:    strings.TrimRight(origin, "/"),
	}
}

// GenerateJWT signs an HS256 token carrying the user id and role
func (s *UserService) GenerateJWT(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     now.Add(s.jwtTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns its claims
func (s *UserService) ValidateJWT(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("user_id not found in token")
	}
	role, _ := claims["role"].(string)

	return &Claims{UserID: userID, Role: role}, nil
}

// Register creates a standard account. The returned user carries no credential.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, apperr.InvalidInput("Name, email and password are required")
	}

	exists, err := s.store.Users.EmailExists(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	if exists {
		return nil, apperr.Conflict("Email already exists")
	}

	hashed, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}

	user := &models.User{
		Username:  name,
		Email:     email,
		Password:  hashed,
		Role:      models.RoleStandard,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, apperr.Internal("Server error", err)
	}

	user.Password = ""
	return user, nil
}

// Login checks the credential and issues a token
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, "", apperr.InvalidInput("Email and password are required")
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.NotFound("User not found")
		}
		return nil, "", apperr.Internal("Server error", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.Password)
	if err != nil {
		return nil, "", apperr.Internal("Server error", err)
	}
	if !ok {
		return nil, "", apperr.InvalidCredentials("Invalid password")
	}

	token, err := s.GenerateJWT(user.ID, user.Role)
	if err != nil {
		return nil, "", apperr.Internal("Server error", err)
	}

	user.Password = ""
	return user, token, nil
}

// GetUser returns a user without its credential
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	if !s.store.ValidID(userID) {
		return nil, apperr.InvalidInput("Invalid User ID")
	}
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error while retrieving user", err)
	}
	return user, nil
}

// CheckEmailExists reports whether an account uses email
func (s *UserService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, apperr.InvalidInput("Email is required")
	}
	exists, err := s.store.Users.EmailExists(ctx, email)
	if err != nil {
		return false, apperr.Internal("Server error", err)
	}
	return exists, nil
}

// UpdateProfile replaces the user's profile attributes
func (s *UserService) UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error) {
	if !s.store.ValidID(userID) {
		return nil, apperr.InvalidInput("Invalid User ID")
	}
	user, err := s.store.Users.UpdateProfile(ctx, userID, profile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Error updating profile", err)
	}
	user.Password = ""
	return user, nil
}

// ListFollowers returns summaries of the users following userID
func (s *UserService) ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, user.Followers)
}

// ListFollowing returns summaries of the users userID follows
func (s *UserService) ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, user.Following)
}

func (s *UserService) summaries(ctx context.Context, ids []string) ([]models.UserSummary, error) {
	out := make([]models.UserSummary, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.store.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Server error while retrieving users", err)
	}

	// keep the order of the edge set; dangling ids are skipped
	byID := make(map[string]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}

// FollowUser makes followerID follow userID and notifies userID
func (s *UserService) FollowUser(ctx context.Context, userID, followerID string) error {
	if err := s.checkEdge(userID, followerID); err != nil {
		return err
	}
	if userID == followerID {
		return apperr.InvalidInput("Users cannot follow themselves.")
	}

	_, follower, err := s.lookupPair(ctx, userID, followerID)
	if err != nil {
		return err
	}

	if err := s.store.Users.AddFollower(ctx, userID, followerID); err != nil {
		return apperr.Internal("Error adding follower", err)
	}

	s.notifier.Notify(ctx, &models.Notification{
		Recipient: userID,
		Sender:    followerID,
		Type:      models.NotificationFollow,
		Message:   fmt.Sprintf("%s started following you.", follower.Username),
		Link:      fmt.Sprintf("%s/profileViewer/%s", s.origin, followerID),
	})
	return nil
}

// UnfollowUser removes the edge if present and notifies userID
func (s *UserService) UnfollowUser(ctx context.Context, userID, followerID string) error {
	if err := s.checkEdge(userID, followerID); err != nil {
		return err
	}

	if err := s.store.Users.RemoveFollower(ctx, userID, followerID); err != nil {
		return apperr.Internal("Error removing follower", err)
	}

	_, follower, err := s.lookupPair(ctx, userID, followerID)
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, &models.Notification{
		Recipient: userID,
		Sender:    followerID,
		Type:      models.NotificationUnfollow,
		Message:   fmt.Sprintf("%s unfollowed you.", follower.Username),
		Link:      fmt.Sprintf("%s/user/%s", s.origin, followerID),
	})
	return nil
}

func (s *UserService) checkEdge(userID, followerID string) error {
	if userID == "" || followerID == "" {
		return apperr.InvalidInput("userId and followerId are required")
	}
	if !s.store.ValidID(userID) || !s.store.ValidID(followerID) {
		return apperr.InvalidInput("Invalid User ID")
	}
	return nil
}

// lookupPair loads both ends of an edge concurrently
func (s *UserService) lookupPair(ctx context.Context, userID, followerID string) (*models.User, *models.User, error) {
	var user, follower *models.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.store.Users.GetByID(gctx, userID)
		user = u
		return err
	})
	g.Go(func() error {
		u, err := s.store.Users.GetByID(gctx, followerID)
		follower = u
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperr.NotFound("User not found")
		}
		return nil, nil, apperr.Internal("Server error while retrieving users", err)
	}
	return user, follower, nil
}
