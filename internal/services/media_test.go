package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/models"
	"event-media-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMediaService(t *testing.T, env *testEnv) (*MediaService, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocal(dir, "/uploads")
	require.NoError(t, err)
	return NewMediaService(env.store, local), dir
}

func uploadFile(name, contentType, body string) UploadFile {
	return UploadFile{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

func TestMediaUploadListDelete(t *testing.T) {
	env := newTestEnv(t)
	svc, dir := newMediaService(t, env)
	ctx := context.Background()

	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	event, err := env.events.CreateEvent(ctx, newEventInput(author))
	require.NoError(t, err)

	media, err := svc.Upload(ctx, event.ID, author.UserID, []UploadFile{
		uploadFile("Beach.JPG", "image/jpeg", "img"),
		uploadFile("clip.mp4", "video/mp4", "vid"),
	})
	require.NoError(t, err)
	require.Len(t, media, 2)

	assert.Equal(t, models.MediaImage, media[0].Type)
	assert.Equal(t, models.MediaVideo, media[1].Type)
	for _, m := range media {
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, event.ID, m.EventID)
		assert.Equal(t, author.UserID, m.UploadedBy)
		assert.True(t, strings.HasPrefix(m.URL, "/uploads/events/"+event.ID+"/"))
	}
	assert.True(t, strings.HasSuffix(media[0].URL, ".jpg"))

	key := strings.TrimPrefix(media[0].URL, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	listed, err := svc.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, svc.Delete(ctx, media[0].ID))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	err = svc.Delete(ctx, media[0].ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	listed, err = svc.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestMediaUpload_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newMediaService(t, env)
	ctx := context.Background()
	file := uploadFile("a.png", "image/png", "x")

	_, err := svc.Upload(ctx, "", "u1", []UploadFile{file})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	_, err = svc.Upload(ctx, uuid.NewString(), "u1", nil)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	_, err = svc.Upload(ctx, uuid.NewString(), "", []UploadFile{file})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	_, err = svc.Upload(ctx, uuid.NewString(), "u1", []UploadFile{file})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMediaListByEvent_None(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newMediaService(t, env)

	_, err := svc.ListByEvent(context.Background(), uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMediaPresign_LocalStorage(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newMediaService(t, env)
	ctx := context.Background()

	author := models.Author{Username: "alice", UserID: uuid.NewString()}
	event, err := env.events.CreateEvent(ctx, newEventInput(author))
	require.NoError(t, err)

	_, err = svc.PresignUpload(ctx, event.ID, "a.jpg", "image/jpeg")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	_, err = svc.PresignUpload(ctx, event.ID, "", "image/jpeg")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}
