// Package repotest holds behaviour checks shared by every repository backend.
// Each backend runs them against its own Store; records are keyed with fresh
// ids so the checks also work on a database that already holds data.
package repotest

import (
	"context"
	"testing"
	"time"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises store through the repository contracts
func Run(t *testing.T, store *repository.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, store) })
	t.Run("FollowEdges", func(t *testing.T) { testFollowEdges(t, store) })
	t.Run("Events", func(t *testing.T) { testEvents(t, store) })
	t.Run("Media", func(t *testing.T) { testMedia(t, store) })
	t.Run("Notifications", func(t *testing.T) { testNotifications(t, store) })
	t.Run("Admins", func(t *testing.T) { testAdmins(t, store) })
}

func suffix() string {
	return uuid.NewString()[:8]
}

func createUser(t *testing.T, store *repository.Store, name string) *models.User {
	t.Helper()
	u := &models.User{
		Username:  name,
		Email:     name + "-" + suffix() + "@example.com",
		Password:  "hash",
		Role:      models.RoleStandard,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Users.Create(context.Background(), u))
	require.True(t, store.ValidID(u.ID), "generated id %q", u.ID)
	return u
}

func testUsers(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	u := createUser(t, store, "ann")

	got, err := store.Users.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "ann", got.Username)

	exists, err := store.Users.EmailExists(ctx, u.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.Users.Create(ctx, &models.User{Username: "dup", Email: u.Email, Password: "hash", CreatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	verified, err := store.Users.SetVerified(ctx, u.ID, true)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	require.NoError(t, store.Users.Delete(ctx, u.ID))
	_, err = store.Users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Users.Delete(ctx, u.ID), repository.ErrNotFound)
}

func testFollowEdges(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	a := createUser(t, store, "a")
	b := createUser(t, store, "b")

	require.NoError(t, store.Users.AddFollower(ctx, a.ID, b.ID))
	require.NoError(t, store.Users.AddFollower(ctx, a.ID, b.ID))

	got, err := store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, got.Followers)
	assert.Empty(t, got.Following)

	got, err = store.Users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, got.Following)

	require.NoError(t, store.Users.RemoveFollower(ctx, a.ID, b.ID))
	require.NoError(t, store.Users.RemoveFollower(ctx, a.ID, b.ID))

	got, err = store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Followers)

	got, err = store.Users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Following)
}

func testEvents(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	author := "author-" + suffix()
	now := time.Now().UTC()
	event := &models.Event{
		Title:       "launch",
		Description: "party",
		ImageURLs:   []string{"a.png"},
		Author:      models.Author{Username: "ann", UserID: author},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, store.Events.Create(ctx, event))
	require.True(t, store.ValidID(event.ID))

	byAuthor, err := store.Events.ListByAuthor(ctx, author)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, event.ID, byAuthor[0].ID)

	followed, err := store.Events.AddFollower(ctx, event.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, followed.Followers)

	_, err = store.Events.AddFollower(ctx, event.ID, "u1")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	unfollowed, err := store.Events.RemoveFollower(ctx, event.ID, "u1")
	require.NoError(t, err)
	assert.Empty(t, unfollowed.Followers)

	title := "renamed"
	updated, err := store.Events.Update(ctx, event.ID, models.EventUpdate{
		AppendImages: []string{"a.png", "b.png"},
		Title:        &title,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "a.png", "b.png"}, updated.ImageURLs)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "party", updated.Description)

	require.NoError(t, store.Events.SetPassword(ctx, event.ID, "hashed"))
	got, err := store.Events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed", got.Password)

	require.NoError(t, store.Events.Delete(ctx, event.ID))
	_, err = store.Events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.Events.AddFollower(ctx, event.ID, "u2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testMedia(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	eventID := "event-" + suffix()
	now := time.Now().UTC()
	media := []*models.Media{
		{URL: "one.png", Type: models.MediaImage, EventID: eventID, UploadedBy: "u1", CreatedAt: now},
		{URL: "two.mp4", Type: models.MediaVideo, EventID: eventID, UploadedBy: "u1", CreatedAt: now},
	}
	require.NoError(t, store.Media.CreateMany(ctx, media))
	for _, m := range media {
		require.NotEmpty(t, m.ID)
	}

	list, err := store.Media.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	deleted, err := store.Media.Delete(ctx, media[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "one.png", deleted.URL)
	assert.Equal(t, eventID, deleted.EventID)

	_, err = store.Media.Delete(ctx, media[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err = store.Media.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "two.mp4", list[0].URL)
}

func testNotifications(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	recipient := "recipient-" + suffix()
	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, msg := range []string{"first", "second", "third"} {
		n := &models.Notification{
			Recipient: recipient,
			Sender:    "s",
			Type:      models.NotificationFollow,
			Message:   msg,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.Notifications.Create(ctx, n))
	}

	latest, err := store.Notifications.ListByRecipient(ctx, recipient, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "third", latest[0].Message)
	assert.Equal(t, "second", latest[1].Message)

	all, err := store.Notifications.ListByRecipient(ctx, recipient, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.NoError(t, store.Notifications.Delete(ctx, all[2].ID))
	all, err = store.Notifications.ListByRecipient(ctx, recipient, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testAdmins(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	admin := &models.Admin{
		Name:      "root",
		Email:     "root-" + suffix() + "@example.com",
		Password:  "hash",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Admins.Create(ctx, admin))

	got, err := store.Admins.GetByEmail(ctx, admin.Email)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	got, err = store.Admins.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "root", got.Name)

	err = store.Admins.Create(ctx, &models.Admin{Name: "again", Email: admin.Email, Password: "hash", CreatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}
