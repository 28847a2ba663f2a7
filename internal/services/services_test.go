package services

import (
	"context"
	"testing"
	"time"

	"event-media-backend/internal/hasher"
	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"
	"event-media-backend/internal/repository/memory"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "test-secret"
	testOrigin = "https://app.example.com"
)

type testEnv struct {
	store         *repository.Store
	hasher        *hasher.Hasher
	notifications *NotificationService
	users         *UserService
	events        *EventService
	admins        *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, memory.New())
}

func newTestEnvWith(t *testing.T, store *repository.Store) *testEnv {
	t.Helper()
	h := hasher.New(bcrypt.MinCost, 4)
	notifications := NewNotificationService(store.Notifications)
	return &testEnv{
		store:         store,
		hasher:        h,
		notifications: notifications,
		users:         NewUserService(store, h, notifications, testSecret, time.Hour, testOrigin),
		events:        NewEventService(store, h),
		admins:        NewAdminService(store, h),
	}
}

func (e *testEnv) register(t *testing.T, name, email string) *models.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), name, email, "pw1")
	require.NoError(t, err)
	return user
}

func (e *testEnv) admin(t *testing.T) *models.Admin {
	t.Helper()
	admin, _, err := e.admins.EnsureAdmin(context.Background(), "Root", "root@x.com", "rootpw")
	require.NoError(t, err)
	return admin
}

// mockNotificationRepo lets tests fail notification writes
type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, recipient string, limit int) ([]*models.Notification, error) {
	args := m.Called(ctx, recipient, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) All(ctx context.Context) ([]*models.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
