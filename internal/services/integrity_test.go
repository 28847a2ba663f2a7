package services

import (
	"context"
	"testing"
	"time"

	"event-media-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrityCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewIntegrityService(env.store)

	alice := env.register(t, "alice", "alice@x.com")
	bob := env.register(t, "bob", "bob@x.com")
	ghost := uuid.NewString()

	kept, err := env.events.CreateEvent(ctx, newEventInput(models.Author{Username: "alice", UserID: alice.ID}))
	require.NoError(t, err)
	orphan, err := env.events.CreateEvent(ctx, newEventInput(models.Author{Username: "ghost", UserID: ghost}))
	require.NoError(t, err)

	now := time.Now().UTC()
	keptMedia := &models.Media{URL: "/k.jpg", Type: models.MediaImage, EventID: kept.ID, UploadedBy: alice.ID, CreatedAt: now}
	orphanMedia := &models.Media{URL: "/o.jpg", Type: models.MediaImage, EventID: orphan.ID, UploadedBy: ghost, CreatedAt: now}
	goneMedia := &models.Media{URL: "/g.jpg", Type: models.MediaImage, EventID: uuid.NewString(), UploadedBy: alice.ID, CreatedAt: now}
	require.NoError(t, env.store.Media.CreateMany(ctx, []*models.Media{keptMedia, orphanMedia, goneMedia}))

	require.NoError(t, env.users.FollowUser(ctx, alice.ID, bob.ID))
	stray := &models.Notification{Recipient: alice.ID, Sender: ghost, Type: models.NotificationFollow, CreatedAt: now}
	require.NoError(t, env.store.Notifications.Create(ctx, stray))

	report, err := svc.Check(ctx, false)
	require.NoError(t, err)
	assert.False(t, report.Applied)
	assert.Equal(t, []string{orphan.ID}, report.OrphanEvents)
	assert.ElementsMatch(t, []string{orphanMedia.ID, goneMedia.ID}, report.OrphanMedia)
	assert.Equal(t, []string{stray.ID}, report.OrphanNotifications)
	assert.Equal(t, 4, report.Total())

	// dry run leaves everything in place
	_, err = env.store.Events.GetByID(ctx, orphan.ID)
	require.NoError(t, err)

	report, err = svc.Check(ctx, true)
	require.NoError(t, err)
	assert.True(t, report.Applied)

	_, err = env.events.GetEvent(ctx, orphan.ID)
	assert.Error(t, err)
	_, err = env.events.GetEvent(ctx, kept.ID)
	assert.NoError(t, err)

	report, err = svc.Check(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, report.Total())

	notes, err := env.notifications.List(ctx, alice.ID, 0)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}
