package memory

import (
	"context"
	"testing"
	"time"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"
	"event-media-backend/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, store *repository.Store, name, email string, createdAt time.Time) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: email, CreatedAt: createdAt}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func TestUsers_DuplicateEmail(t *testing.T) {
	store := New()
	newUser(t, store, "a", "a@x.com", time.Now())

	err := store.Users.Create(context.Background(), &models.User{Username: "b", Email: "a@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUsers_FollowEdges(t *testing.T) {
	ctx := context.Background()
	store := New()
	a := newUser(t, store, "a", "a@x.com", time.Now())
	b := newUser(t, store, "b", "b@x.com", time.Now())

	require.NoError(t, store.Users.AddFollower(ctx, a.ID, b.ID))
	require.NoError(t, store.Users.AddFollower(ctx, a.ID, b.ID))

	got, err := store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, got.Followers)

	got, err = store.Users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, got.Following)

	require.NoError(t, store.Users.RemoveFollower(ctx, a.ID, b.ID))
	require.NoError(t, store.Users.RemoveFollower(ctx, a.ID, b.ID))
	got, err = store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Followers)
}

func TestUsers_ReturnedCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := New()
	a := newUser(t, store, "a", "a@x.com", time.Now())

	got, err := store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	got.Followers = append(got.Followers, "intruder")
	got.Username = "changed"

	again, err := store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Followers)
	assert.Equal(t, "a", again.Username)
}

func TestUsers_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := New()
	base := time.Now()
	for i, name := range []string{"u0", "u1", "u2"} {
		newUser(t, store, name, name+"@x.com", base.Add(time.Duration(i)*time.Minute))
	}

	page, err := store.Users.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "u2", page[0].Username)
	assert.Equal(t, "u1", page[1].Username)

	page, err = store.Users.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "u0", page[0].Username)

	page, err = store.Users.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestUsers_VerifyByUsernamePicksOldest(t *testing.T) {
	ctx := context.Background()
	store := New()
	base := time.Now()
	newer := newUser(t, store, "Ann", "n@x.com", base.Add(time.Hour))
	older := newUser(t, store, "Ann", "o@x.com", base)

	got, err := store.Users.VerifyByUsername(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)
	assert.True(t, got.Verified)

	n, err := store.Users.GetByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.False(t, n.Verified)

	_, err = store.Users.VerifyByUsername(ctx, "Nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEvents_FollowAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := New()
	event := &models.Event{Title: "t", Description: "d", ImageURLs: []string{"a.png"}, CreatedAt: time.Now()}
	require.NoError(t, store.Events.Create(ctx, event))
	assert.True(t, ValidID(event.ID))

	_, err := store.Events.AddFollower(ctx, event.ID, "u1")
	require.NoError(t, err)
	_, err = store.Events.AddFollower(ctx, event.ID, "u1")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = store.Events.AddFollower(ctx, "missing", "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	title := "renamed"
	updated, err := store.Events.Update(ctx, event.ID, models.EventUpdate{
		AppendImages: []string{"a.png"},
		Title:        &title,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "a.png"}, updated.ImageURLs)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "d", updated.Description)
}

func TestMedia_DeleteReturnsRecord(t *testing.T) {
	ctx := context.Background()
	store := New()
	media := []*models.Media{
		{URL: "u1", EventID: "e1", CreatedAt: time.Now()},
		{URL: "u2", EventID: "e2", CreatedAt: time.Now()},
	}
	require.NoError(t, store.Media.CreateMany(ctx, media))

	list, err := store.Media.ListByEvent(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	deleted, err := store.Media.Delete(ctx, media[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", deleted.URL)

	_, err = store.Media.Delete(ctx, media[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("0b8f3c1e-8f5a-4d8e-9a61-2f1a3b7c9d10"))
	assert.False(t, ValidID("not-an-id"))
	assert.False(t, ValidID(""))
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Equal(t, []int{2, 3}, window(items, 0, 1))
	assert.Equal(t, []int{1, 2}, window(items, 2, -7))
	assert.Empty(t, window(items, 2, 3))
}

func TestStoreContract(t *testing.T) {
	repotest.Run(t, New())
}
