package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/models"
	"event-media-backend/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleStandard, user.Role)
	assert.Empty(t, user.Password)

	stored, err := env.store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.Password)

	_, err = env.users.Register(ctx, "alice again", "alice@x.com", "pw2")
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name, username, email, password string
	}{
		{"no name", "", "a@x.com", "pw"},
		{"no email", "a", "", "pw"},
		{"no password", "a", "a@x.com", ""},
		{"blank password", "a", "a@x.com", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.users.Register(context.Background(), tt.username, tt.email, tt.password)
			assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@x.com")

	user, token, err := env.users.Login(ctx, " alice@x.com ", "pw1 ")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
	assert.Empty(t, user.Password)

	claims, err := env.users.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)
	assert.Equal(t, models.RoleStandard, claims.Role)

	_, _, err = env.users.Login(ctx, "alice@x.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCredentials))

	_, _, err = env.users.Login(ctx, "nobody@x.com", "pw1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, _, err = env.users.Login(ctx, "", "pw1")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	env := newTestEnv(t)
	other := NewUserService(env.store, env.hasher, env.notifications, "other-secret", time.Hour, testOrigin)

	token, err := other.GenerateJWT("u1", models.RoleStandard)
	require.NoError(t, err)

	_, err = env.users.ValidateJWT(token)
	assert.Error(t, err)
}

func TestNewUserService_DefaultTTL(t *testing.T) {
	env := newTestEnv(t)
	// a non-positive ttl falls back to the default instead of minting expired tokens
	svc := NewUserService(env.store, env.hasher, env.notifications, testSecret, -time.Hour, testOrigin)
	token, err := svc.GenerateJWT("u1", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := env.users.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestFollowUser_Self(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "alice", "alice@x.com")

	err := env.users.FollowUser(context.Background(), a.ID, a.ID)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestFollowUser_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice", "alice@x.com")
	b := env.register(t, "bob", "bob@x.com")

	require.NoError(t, env.users.FollowUser(ctx, a.ID, b.ID))
	require.NoError(t, env.users.FollowUser(ctx, a.ID, b.ID))

	alice, err := env.store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, alice.Followers)

	bob, err := env.store.Users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, bob.Following)

	notes, err := env.notifications.List(ctx, a.ID, 0)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	n := notes[0]
	assert.Equal(t, models.NotificationFollow, n.Type)
	assert.Equal(t, b.ID, n.Sender)
	assert.Equal(t, "bob started following you.", n.Message)
	assert.Equal(t, testOrigin+"/profileViewer/"+b.ID, n.Link)
}

func TestUnfollowUser_NeverFollowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice", "alice@x.com")
	b := env.register(t, "bob", "bob@x.com")

	require.NoError(t, env.users.UnfollowUser(ctx, a.ID, b.ID))

	alice, err := env.store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, alice.Followers)

	bob, err := env.store.Users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, bob.Following)

	notes, err := env.notifications.List(ctx, a.ID, 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationUnfollow, notes[0].Type)
	assert.Equal(t, "bob unfollowed you.", notes[0].Message)
	assert.Equal(t, testOrigin+"/user/"+b.ID, notes[0].Link)
}

func TestFollowThenUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice", "alice@x.com")
	b := env.register(t, "bob", "bob@x.com")

	require.NoError(t, env.users.FollowUser(ctx, a.ID, b.ID))
	require.NoError(t, env.users.UnfollowUser(ctx, a.ID, b.ID))

	followers, err := env.users.ListFollowers(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	following, err := env.users.ListFollowing(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, following)
}

func TestFollowUser_MissingUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice", "alice@x.com")

	err := env.users.FollowUser(ctx, a.ID, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	notes, err := env.notifications.List(ctx, a.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, notes)

	got, err := env.store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Followers)

	// the follower exists but the followed user does not
	err = env.users.FollowUser(ctx, uuid.NewString(), a.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	got, err = env.store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Following)
}

func TestFollowUser_InvalidIDs(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "alice", "alice@x.com")

	err := env.users.FollowUser(context.Background(), a.ID, "not-an-id")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	err = env.users.FollowUser(context.Background(), "", a.ID)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestFollowUser_NotificationFailureIsSwallowed(t *testing.T) {
	store := memory.New()
	repo := new(mockNotificationRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).
		Return(errors.New("write failed"))
	store.Notifications = repo
	env := newTestEnvWith(t, store)
	ctx := context.Background()

	a := env.register(t, "alice", "alice@x.com")
	b := env.register(t, "bob", "bob@x.com")

	require.NoError(t, env.users.FollowUser(ctx, a.ID, b.ID))

	alice, err := store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, alice.Followers)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestListFollowers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice", "alice@x.com")
	b := env.register(t, "bob", "bob@x.com")
	c := env.register(t, "carol", "carol@x.com")

	_, err := env.users.UpdateProfile(ctx, b.ID, models.Profile{ProfilePicture: "bob.jpg"})
	require.NoError(t, err)

	require.NoError(t, env.users.FollowUser(ctx, a.ID, b.ID))
	require.NoError(t, env.users.FollowUser(ctx, a.ID, c.ID))

	followers, err := env.users.ListFollowers(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.UserSummary{
		{ID: b.ID, Username: "bob", ProfilePicture: "bob.jpg"},
		{ID: c.ID, Username: "carol"},
	}, followers)

	following, err := env.users.ListFollowing(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, a.ID, following[0].ID)

	_, err = env.users.ListFollowers(ctx, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = env.users.ListFollowers(ctx, "bad")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestGetUserAndCheckEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice", "alice@x.com")

	user, err := env.users.GetUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, user.Password)

	exists, err := env.users.CheckEmailExists(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = env.users.CheckEmailExists(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = env.users.CheckEmailExists(ctx, "")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice", "alice@x.com")

	user, err := env.users.UpdateProfile(ctx, a.ID, models.Profile{Bio: "hi", City: "Nairobi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", user.Profile.Bio)
	assert.Equal(t, "Nairobi", user.Profile.City)
	assert.Empty(t, user.Password)

	_, err = env.users.UpdateProfile(ctx, uuid.NewString(), models.Profile{})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
