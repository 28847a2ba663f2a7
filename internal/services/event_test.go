package services

import (
	"context"
	"testing"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventInput(author models.Author) CreateEventInput {
	return CreateEventInput{
		Title:       "Launch party",
		Description: "Rooftop photos",
		CoverPhoto:  "cover.jpg",
		ImageURLs:   []string{"a.jpg"},
		Author:      author,
	}
}

func (e *testEnv) privateEvent(t *testing.T, author models.Author, password string) *models.Event {
	t.Helper()
	in := newEventInput(author)
	in.Private = true
	in.Password = password
	event, err := e.events.CreateEvent(context.Background(), in)
	require.NoError(t, err)
	return event
}

func TestCreateEvent_Public(t *testing.T) {
	env := newTestEnv(t)
	author := models.Author{Username: "alice", UserID: uuid.NewString()}

	in := newEventInput(author)
	in.Password = "ignored"
	event, err := env.events.CreateEvent(context.Background(), in)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Private)
	assert.Empty(t, event.Password)
	assert.Equal(t, []string{"a.jpg"}, event.ImageURLs)
	assert.Empty(t, event.VideoURLs)
	assert.Empty(t, event.Followers)
}

func TestCreateEvent_PrivateNeedsPassword(t *testing.T) {
	env := newTestEnv(t)
	author := models.Author{Username: "alice", UserID: uuid.NewString()}

	for _, password := range []string{"", "   "} {
		in := newEventInput(author)
		in.Private = true
		in.Password = password
		_, err := env.events.CreateEvent(context.Background(), in)
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "password %q", password)
	}
}

func TestCreateEvent_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	author := models.Author{Username: "alice", UserID: uuid.NewString()}

	tests := []struct {
		name   string
		mutate func(*CreateEventInput)
	}{
		{"no title", func(in *CreateEventInput) { in.Title = "" }},
		{"no description", func(in *CreateEventInput) { in.Description = "" }},
		{"no author name", func(in *CreateEventInput) { in.Author.Username = "" }},
		{"no author id", func(in *CreateEventInput) { in.Author.UserID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newEventInput(author)
			tt.mutate(&in)
			_, err := env.events.CreateEvent(context.Background(), in)
			assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@x.com")
	author := models.Author{Username: alice.Username, UserID: alice.ID}

	event := env.privateEvent(t, author, "secret ")

	got, err := env.events.Authenticate(ctx, event.ID, "secret")
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, "Launch party", got.Title)

	_, err = env.events.Authenticate(ctx, event.ID, "Secret")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCredentials))

	_, err = env.events.Authenticate(ctx, event.ID, "y")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCredentials))

	_, err = env.events.Authenticate(ctx, uuid.NewString(), "secret")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAuthenticate_PublicEvent(t *testing.T) {
	env := newTestEnv(t)
	author := models.Author{Username: "alice", UserID: uuid.NewString()}

	event, err := env.events.CreateEvent(context.Background(), newEventInput(author))
	require.NoError(t, err)

	_, err = env.events.Authenticate(context.Background(), event.ID, "anything")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	event := env.privateEvent(t, author, "old")

	impostor := models.Author{Username: "alice", UserID: uuid.NewString()}
	err := env.events.UpdatePassword(ctx, event.ID, "new", impostor)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	err = env.events.UpdatePassword(ctx, event.ID, "", author)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	require.NoError(t, env.events.UpdatePassword(ctx, event.ID, "new", author))

	_, err = env.events.Authenticate(ctx, event.ID, "new")
	assert.NoError(t, err)
	_, err = env.events.Authenticate(ctx, event.ID, "old")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCredentials))

	err = env.events.UpdatePassword(ctx, uuid.NewString(), "new", author)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUpdatePassword_PublicEvent(t *testing.T) {
	env := newTestEnv(t)
	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	event, err := env.events.CreateEvent(context.Background(), newEventInput(author))
	require.NoError(t, err)

	err = env.events.UpdatePassword(context.Background(), event.ID, "new", author)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestUpdateEventMedia(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	event, err := env.events.CreateEvent(ctx, newEventInput(author))
	require.NoError(t, err)

	_, err = env.events.UpdateEventMedia(ctx, event.ID, []string{"b.jpg"}, nil, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = env.events.UpdateEventMedia(ctx, event.ID, []string{"b.jpg"}, nil, "")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := env.events.UpdateEventMedia(ctx, event.ID, []string{"b.jpg", "a.jpg"}, []string{"v.mp4"}, author.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "a.jpg"}, updated.ImageURLs)
	assert.Equal(t, []string{"v.mp4"}, updated.VideoURLs)

	_, err = env.events.UpdateEventMedia(ctx, uuid.NewString(), nil, nil, author.UserID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUpdateEventCoverPhoto(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	event, err := env.events.CreateEvent(ctx, newEventInput(author))
	require.NoError(t, err)

	_, err = env.events.UpdateEventCoverPhoto(ctx, event.ID, "new.jpg", uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := env.events.UpdateEventCoverPhoto(ctx, event.ID, "new.jpg", author.UserID)
	require.NoError(t, err)
	assert.Equal(t, "new.jpg", updated.CoverPhoto)
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	event, err := env.events.CreateEvent(ctx, newEventInput(author))
	require.NoError(t, err)

	updated, err := env.events.UpdateEvent(ctx, event.ID, EventChanges{
		ImageURLs: []string{"b.jpg"},
		Title:     "Renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Rooftop photos", updated.Description)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, updated.ImageURLs)

	require.NoError(t, env.events.DeleteEvent(ctx, event.ID))

	_, err = env.events.GetEvent(ctx, event.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = env.events.DeleteEvent(ctx, event.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = env.events.UpdateEvent(ctx, "garbage", EventChanges{Title: "x"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestGetEventMedia(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	in := newEventInput(author)
	in.VideoURLs = []string{"v.mp4"}
	event, err := env.events.CreateEvent(ctx, in)
	require.NoError(t, err)

	images, err := env.events.GetEventMedia(ctx, event.ID, "PHOTO")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, images)

	images, err = env.events.GetEventMedia(ctx, event.ID, "image")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, images)

	videos, err := env.events.GetEventMedia(ctx, event.ID, "Video")
	require.NoError(t, err)
	assert.Equal(t, []string{"v.mp4"}, videos)

	_, err = env.events.GetEventMedia(ctx, event.ID, "audio")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	_, err = env.events.GetEventMedia(ctx, "", "photo")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	_, err = env.events.GetEventMedia(ctx, uuid.NewString(), "photo")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestFollowEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	event, err := env.events.CreateEvent(ctx, newEventInput(author))
	require.NoError(t, err)
	follower := uuid.NewString()

	followed, err := env.events.FollowEvent(ctx, event.ID, follower)
	require.NoError(t, err)
	assert.Equal(t, []string{follower}, followed.Followers)

	_, err = env.events.FollowEvent(ctx, event.ID, follower)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	unfollowed, err := env.events.UnfollowEvent(ctx, event.ID, follower)
	require.NoError(t, err)
	assert.Empty(t, unfollowed.Followers)

	// removing an absent follower is a no-op
	unfollowed, err = env.events.UnfollowEvent(ctx, event.ID, follower)
	require.NoError(t, err)
	assert.Empty(t, unfollowed.Followers)

	_, err = env.events.FollowEvent(ctx, uuid.NewString(), follower)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = env.events.FollowEvent(ctx, event.ID, "")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestListEventsByUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := models.Author{Username: "alice", UserID: uuid.NewString()}
	bob := models.Author{Username: "bob", UserID: uuid.NewString()}

	_, err := env.events.CreateEvent(ctx, newEventInput(alice))
	require.NoError(t, err)
	_, err = env.events.CreateEvent(ctx, newEventInput(bob))
	require.NoError(t, err)

	all, err := env.events.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := env.events.ListEventsByUser(ctx, alice.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice, mine[0].Author)

	_, err = env.events.ListEventsByUser(ctx, "")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}
